package buffer

import (
	"iter"

	"github.com/teenjuna/deq"
)

var _ Buffer[any] = (*WindowBuffer[any])(nil)

// WindowBuffer is a bounded buffer holding at most size items. When it's full, a push drops an
// item according to its [OverflowPolicy].
type WindowBuffer[Item any] struct {
	items  *deq.Deque[Item]
	size   int
	policy OverflowPolicy
	pushes int
	drops  int
	onDrop func(Item)
}

// Window returns an empty [WindowBuffer] of the given size.
func Window[Item any](size int, policy OverflowPolicy) *WindowBuffer[Item] {
	if size < 1 {
		panic("size can't be < 1")
	}
	if policy != DropOldest && policy != DropNewest {
		panic("unknown overflow policy")
	}
	return &WindowBuffer[Item]{
		items:  deq.New[Item](func(c *deq.Config) { c.Capacity(size) }),
		size:   size,
		policy: policy,
	}
}

// WithDropCallback sets a function called with every dropped item.
func (b *WindowBuffer[Item]) WithDropCallback(onDrop func(Item)) *WindowBuffer[Item] {
	b.onDrop = onDrop
	return b
}

func (b *WindowBuffer[Item]) Push(item Item) {
	b.pushes++

	if b.items.Size() == b.size {
		b.drops++
		switch b.policy {
		case DropOldest:
			dropped, _ := b.items.PopFront()
			b.drop(dropped)
		case DropNewest:
			b.drop(item)
			return
		}
	}

	b.items.PushBack(item)
}

func (b *WindowBuffer[Item]) Size() int {
	return b.items.Size()
}

func (b *WindowBuffer[Item]) Pushes() int {
	return b.pushes
}

// Drops returns the number of items dropped since the last reset.
func (b *WindowBuffer[Item]) Drops() int {
	return b.drops
}

// Oldest returns the oldest item. Returns false if the buffer is empty.
func (b *WindowBuffer[Item]) Oldest() (Item, bool) {
	item, err := b.items.Front()
	return item, err == nil
}

// Newest returns the newest item. Returns false if the buffer is empty.
func (b *WindowBuffer[Item]) Newest() (Item, bool) {
	item, err := b.items.Back()
	return item, err == nil
}

func (b *WindowBuffer[Item]) Iter() iter.Seq[Item] {
	return b.items.Values()
}

func (b *WindowBuffer[Item]) Reset() {
	b.items.Clear()
	b.pushes = 0
	b.drops = 0
}

func (b *WindowBuffer[Item]) Derive() Buffer[Item] {
	return Window[Item](b.size, b.policy).WithDropCallback(b.onDrop)
}

func (b *WindowBuffer[Item]) drop(item Item) {
	if b.onDrop != nil {
		b.onDrop(item)
	}
}
