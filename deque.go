package deq

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrEmpty is returned when an element is requested from or removed from an empty deque.
	ErrEmpty = errors.New("deque is empty")
	// ErrOutOfRange is returned when a logical index is outside of [0, size).
	ErrOutOfRange = errors.New("index out of range")
	// ErrInvalidIterator is returned when an iterator is used after the storage of its deque was
	// replaced, or when iterators of different deques are compared.
	ErrInvalidIterator = errors.New("invalid iterator")
)

// Deque is a double-ended queue backed by a single circular buffer.
//
//	  0   1   2   3   4
//	+---+---+---+---+---+
//	| C |   |   | A | B |
//	+---+---+---+---+---+
//	front = 3, count = 3, capacity = 5
//
// The zero value is an empty deque ready to use. Deque is not safe for concurrent use.
type Deque[Item any] struct {
	// Items [front, front+count) modulo len(buf) are live.
	buf   []Item
	front int
	count int

	// epoch changes every time buf is replaced. Iterators remember it.
	epoch   uint64
	metrics *metrics
}

// New returns an empty deque configured by the provided functions.
//
// Default configuration:
//   - Capacity: 0 (storage is allocated on the first push)
//   - Prometheus: disabled
func New[Item any](configFuncs ...ConfigFunc) *Deque[Item] {
	cfg := newConfig(configFuncs...)

	d := Deque[Item]{}
	if cfg.capacity > 0 {
		d.buf = make([]Item, cfg.capacity)
	}
	if cfg.prometheus != nil {
		d.metrics = cfg.prometheus.metrics()
		d.metrics.capacity.Set(float64(cfg.capacity))
	}

	return &d
}

// Size returns the number of items in the deque.
func (d *Deque[Item]) Size() int {
	return d.count
}

// IsEmpty reports whether the deque holds no items.
func (d *Deque[Item]) IsEmpty() bool {
	return d.count == 0
}

// Capacity returns the number of slots in the underlying storage.
func (d *Deque[Item]) Capacity() int {
	return len(d.buf)
}

// Front returns the first item.
//
// Returns [ErrEmpty] if the deque is empty.
func (d *Deque[Item]) Front() (Item, error) {
	ref, err := d.FrontRef()
	if err != nil {
		var zero Item
		return zero, err
	}
	return *ref, nil
}

// Back returns the last item.
//
// Returns [ErrEmpty] if the deque is empty.
func (d *Deque[Item]) Back() (Item, error) {
	ref, err := d.BackRef()
	if err != nil {
		var zero Item
		return zero, err
	}
	return *ref, nil
}

// FrontRef returns a pointer to the first item. The pointer stays valid until the storage of the
// deque is replaced by growth, [Deque.Reserve] or [Deque.Assign].
//
// Returns [ErrEmpty] if the deque is empty.
func (d *Deque[Item]) FrontRef() (*Item, error) {
	if d.count == 0 {
		return nil, ErrEmpty
	}
	return &d.buf[d.physical(0)], nil
}

// BackRef returns a pointer to the last item. The same validity rules as for [Deque.FrontRef]
// apply.
//
// Returns [ErrEmpty] if the deque is empty.
func (d *Deque[Item]) BackRef() (*Item, error) {
	if d.count == 0 {
		return nil, ErrEmpty
	}
	return &d.buf[d.physical(d.count-1)], nil
}

// At returns the item at logical index i, where 0 is the front.
//
// Returns an error wrapping [ErrOutOfRange] if i is outside of [0, Size()).
func (d *Deque[Item]) At(i int) (Item, error) {
	ref, err := d.Ref(i)
	if err != nil {
		var zero Item
		return zero, err
	}
	return *ref, nil
}

// Ref returns a pointer to the item at logical index i. The same validity rules as for
// [Deque.FrontRef] apply.
//
// Returns an error wrapping [ErrOutOfRange] if i is outside of [0, Size()).
func (d *Deque[Item]) Ref(i int) (*Item, error) {
	if i < 0 || i >= d.count {
		return nil, fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, d.count)
	}
	return &d.buf[d.physical(i)], nil
}

// Set replaces the item at logical index i.
//
// Returns an error wrapping [ErrOutOfRange] if i is outside of [0, Size()).
func (d *Deque[Item]) Set(i int, item Item) error {
	ref, err := d.Ref(i)
	if err != nil {
		return err
	}
	*ref = item
	return nil
}

// PushBack appends an item after the last one.
func (d *Deque[Item]) PushBack(item Item) {
	if d.count == len(d.buf) {
		d.grow(growth(len(d.buf)))
	}
	d.buf[d.physical(d.count)] = item
	d.count++

	if d.metrics != nil {
		d.metrics.pushes.WithLabelValues(endBack).Inc()
		d.metrics.items.Set(float64(d.count))
	}
}

// PushFront inserts an item before the first one.
func (d *Deque[Item]) PushFront(item Item) {
	if d.count == len(d.buf) {
		d.grow(growth(len(d.buf)))
	}
	d.front = d.physical(-1)
	d.buf[d.front] = item
	d.count++

	if d.metrics != nil {
		d.metrics.pushes.WithLabelValues(endFront).Inc()
		d.metrics.items.Set(float64(d.count))
	}
}

// PopFront removes and returns the first item.
//
// Returns [ErrEmpty] if the deque is empty.
func (d *Deque[Item]) PopFront() (Item, error) {
	var zero Item
	if d.count == 0 {
		return zero, ErrEmpty
	}

	item := d.buf[d.front]
	d.buf[d.front] = zero
	d.front = d.physical(1)
	d.count--

	if d.metrics != nil {
		d.metrics.pops.WithLabelValues(endFront).Inc()
		d.metrics.items.Set(float64(d.count))
	}

	return item, nil
}

// PopBack removes and returns the last item.
//
// Returns [ErrEmpty] if the deque is empty.
func (d *Deque[Item]) PopBack() (Item, error) {
	var zero Item
	if d.count == 0 {
		return zero, ErrEmpty
	}

	i := d.physical(d.count - 1)
	item := d.buf[i]
	d.buf[i] = zero
	d.count--

	if d.metrics != nil {
		d.metrics.pops.WithLabelValues(endBack).Inc()
		d.metrics.items.Set(float64(d.count))
	}

	return item, nil
}

// Clear removes all items. The capacity is retained.
func (d *Deque[Item]) Clear() {
	var zero Item
	for i := range d.count {
		d.buf[d.physical(i)] = zero
	}
	d.front = 0
	d.count = 0

	if d.metrics != nil {
		d.metrics.items.Set(0)
	}
}

// Reserve makes sure the deque can hold at least n items without growing. It never shrinks the
// storage.
func (d *Deque[Item]) Reserve(n int) {
	if n > len(d.buf) {
		d.grow(n)
	}
}

// Assign replaces the contents of d with a copy of the items of other. The copy gets storage of
// the same capacity as other and starts at slot 0, no matter how the items of other wrap.
//
// Iterators of d are invalidated.
func (d *Deque[Item]) Assign(other *Deque[Item]) {
	if d == other {
		return
	}

	buf := make([]Item, len(other.buf))
	for i := range other.count {
		buf[i] = other.buf[other.physical(i)]
	}

	d.buf = buf
	d.front = 0
	d.count = other.count
	d.epoch++

	if d.metrics != nil {
		d.metrics.items.Set(float64(d.count))
		d.metrics.capacity.Set(float64(len(d.buf)))
	}
}

// Clone returns an independent copy of the deque. The copy doesn't report metrics.
func (d *Deque[Item]) Clone() *Deque[Item] {
	c := Deque[Item]{}
	c.Assign(d)
	return &c
}

// All returns a sequence of logical index and item pairs from front to back.
//
// The deque must not be modified during iteration.
func (d *Deque[Item]) All() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		for i := range d.count {
			if !yield(i, d.buf[d.physical(i)]) {
				return
			}
		}
	}
}

// Values returns a sequence of items from front to back.
//
// The deque must not be modified during iteration.
func (d *Deque[Item]) Values() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for i := range d.count {
			if !yield(d.buf[d.physical(i)]) {
				return
			}
		}
	}
}

// Backward returns a sequence of logical index and item pairs from back to front.
//
// The deque must not be modified during iteration.
func (d *Deque[Item]) Backward() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		for i := d.count - 1; i >= 0; i-- {
			if !yield(i, d.buf[d.physical(i)]) {
				return
			}
		}
	}
}

// Begin returns an iterator positioned at the first item.
func (d *Deque[Item]) Begin() Iterator[Item] {
	return Iterator[Item]{deque: d, pos: 0, epoch: d.epoch}
}

// End returns an iterator positioned one past the last item. It can't be dereferenced.
func (d *Deque[Item]) End() Iterator[Item] {
	return Iterator[Item]{deque: d, pos: d.count, epoch: d.epoch}
}

// grow moves the live items in logical order into new storage of the given capacity, starting at
// slot 0.
func (d *Deque[Item]) grow(capacity int) {
	buf := make([]Item, capacity)
	for i := range d.count {
		buf[i] = d.buf[d.physical(i)]
	}

	d.buf = buf
	d.front = 0
	d.epoch++

	if d.metrics != nil {
		d.metrics.grows.Inc()
		d.metrics.capacity.Set(float64(capacity))
	}
}

func (d *Deque[Item]) physical(i int) int {
	return physical(d.front, i, len(d.buf))
}

// physical translates logical index i of a window starting at slot front into a slot of storage
// with the given capacity. i may be negative or exceed capacity. capacity must be > 0.
func physical(front, i, capacity int) int {
	return ((front+i)%capacity + capacity) % capacity
}

func growth(capacity int) int {
	return max(1, capacity*2)
}
