package deq

// Iterator is a random-access cursor over the logical positions of a [Deque].
//
// An iterator doesn't own the deque. It can be moved to any position, including ones outside of
// the deque, but only positions in [0, Size()) can be dereferenced. Growth of the deque,
// [Deque.Reserve] and [Deque.Assign] invalidate all of its iterators; using an invalidated
// iterator returns [ErrInvalidIterator].
//
// The zero value is an invalid iterator.
type Iterator[Item any] struct {
	deque *Deque[Item]
	pos   int
	epoch uint64
}

// Pos returns the logical position of the iterator.
func (it Iterator[Item]) Pos() int {
	return it.pos
}

// Get returns the item at the position of the iterator.
func (it Iterator[Item]) Get() (Item, error) {
	ref, err := it.Ref()
	if err != nil {
		var zero Item
		return zero, err
	}
	return *ref, nil
}

// Ref returns a pointer to the item at the position of the iterator.
func (it Iterator[Item]) Ref() (*Item, error) {
	if err := it.valid(); err != nil {
		return nil, err
	}
	return it.deque.Ref(it.pos)
}

// Set replaces the item at the position of the iterator.
func (it Iterator[Item]) Set(item Item) error {
	ref, err := it.Ref()
	if err != nil {
		return err
	}
	*ref = item
	return nil
}

// Next returns an iterator moved one position towards the back.
func (it Iterator[Item]) Next() Iterator[Item] {
	return it.Add(1)
}

// Prev returns an iterator moved one position towards the front.
func (it Iterator[Item]) Prev() Iterator[Item] {
	return it.Add(-1)
}

// Add returns an iterator moved by offset positions. The result isn't clamped.
func (it Iterator[Item]) Add(offset int) Iterator[Item] {
	it.pos += offset
	return it
}

// Distance returns the number of positions from the from iterator to it, which is negative if
// from is after it.
//
// Returns [ErrInvalidIterator] if the iterators belong to different deques.
func (it Iterator[Item]) Distance(from Iterator[Item]) (int, error) {
	if it.deque == nil || it.deque != from.deque {
		return 0, ErrInvalidIterator
	}
	return it.pos - from.pos, nil
}

// Equal reports whether both iterators belong to the same deque and point at the same position.
func (it Iterator[Item]) Equal(other Iterator[Item]) bool {
	return it.deque == other.deque && it.pos == other.pos
}

func (it Iterator[Item]) valid() error {
	if it.deque == nil || it.deque.epoch != it.epoch {
		return ErrInvalidIterator
	}
	return nil
}
