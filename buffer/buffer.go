// Package buffer provides in-memory item buffers backed by a [deq.Deque].
package buffer

import "iter"

// Buffer is an in-memory container for items.
//
// Implementations are not considered thread-safe and each instance is used by a single goroutine.
type Buffer[Item any] interface {
	// Push adds an item to the buffer.
	Push(item Item)
	// Size returns the number of items in the buffer.
	Size() int
	// Pushes returns the number of pushes made to the buffer since the last reset, which can be
	// greater than Size if the buffer drops items.
	Pushes() int
	// Iter returns a sequence of all items in the buffer, oldest first.
	Iter() iter.Seq[Item]
	// Reset clears all items from the buffer.
	Reset()
	// Derive returns a new buffer instance with the same settings.
	//
	// The returned buffer maintains its own internal state independent of the original.
	Derive() Buffer[Item]
}

// OverflowPolicy defines how a bounded buffer behaves when it's full.
type OverflowPolicy int

const (
	// DropOldest removes the oldest item to make room for the new one.
	DropOldest OverflowPolicy = iota
	// DropNewest drops the new item.
	DropNewest
)

// String returns a human-readable representation of the overflow policy.
func (p OverflowPolicy) String() string {
	switch p {
	case DropOldest:
		return "DropOldest"
	case DropNewest:
		return "DropNewest"
	default:
		return "Unknown"
	}
}
