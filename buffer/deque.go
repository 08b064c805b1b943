package buffer

import (
	"iter"

	"github.com/teenjuna/deq"
)

var _ Buffer[any] = (*DequeBuffer[any])(nil)

// DequeBuffer is an unbounded buffer that keeps items in push order. Unlike a buffer backed by an
// appended slice, it can hand out its oldest items one by one with [DequeBuffer.Pop] without
// moving the rest.
type DequeBuffer[Item any] struct {
	items    *deq.Deque[Item]
	pushes   int
	capacity int
}

// Deque returns an empty [DequeBuffer] with storage for the given number of items allocated up
// front.
func Deque[Item any](capacity int) *DequeBuffer[Item] {
	return &DequeBuffer[Item]{
		items:    deq.New[Item](func(c *deq.Config) { c.Capacity(capacity) }),
		capacity: capacity,
	}
}

func (b *DequeBuffer[Item]) Push(item Item) {
	b.items.PushBack(item)
	b.pushes++
}

// Pop removes and returns the oldest item. Returns false if the buffer is empty.
func (b *DequeBuffer[Item]) Pop() (Item, bool) {
	item, err := b.items.PopFront()
	return item, err == nil
}

func (b *DequeBuffer[Item]) Size() int {
	return b.items.Size()
}

func (b *DequeBuffer[Item]) Pushes() int {
	return b.pushes
}

func (b *DequeBuffer[Item]) Iter() iter.Seq[Item] {
	return b.items.Values()
}

func (b *DequeBuffer[Item]) Reset() {
	b.items.Clear()
	b.pushes = 0
}

func (b *DequeBuffer[Item]) Derive() Buffer[Item] {
	return Deque[Item](b.capacity)
}
