package buffer_test

import (
	"slices"
	"testing"

	"github.com/teenjuna/deq/buffer"
	"github.com/teenjuna/deq/internal/testing/require"
)

func TestWindowValidation(t *testing.T) {
	require.PanicWithError(t, "size can't be < 1", func() {
		_ = buffer.Window[int](0, buffer.DropOldest)
	})
	require.PanicWithError(t, "unknown overflow policy", func() {
		_ = buffer.Window[int](1, buffer.OverflowPolicy(7))
	})
}

func TestWindowDropOldest(t *testing.T) {
	var dropped []int
	window := buffer.Window[int](3, buffer.DropOldest).
		WithDropCallback(func(item int) { dropped = append(dropped, item) })

	for i := range 10 {
		window.Push(i)
		require.Equal(t, window.Size(), min(i+1, 3))
	}

	require.Equal(t, slices.Collect(window.Iter()), []int{7, 8, 9})
	require.Equal(t, dropped, []int{0, 1, 2, 3, 4, 5, 6})
	require.Equal(t, window.Pushes(), 10)
	require.Equal(t, window.Drops(), 7)

	oldest, ok := window.Oldest()
	require.Equal(t, ok, true)
	require.Equal(t, oldest, 7)

	newest, ok := window.Newest()
	require.Equal(t, ok, true)
	require.Equal(t, newest, 9)

	window.Reset()
	require.Equal(t, window.Size(), 0)
	require.Equal(t, window.Pushes(), 0)
	require.Equal(t, window.Drops(), 0)

	_, ok = window.Oldest()
	require.Equal(t, ok, false)
	_, ok = window.Newest()
	require.Equal(t, ok, false)
}

func TestWindowDropNewest(t *testing.T) {
	var dropped []int
	window := buffer.Window[int](3, buffer.DropNewest).
		WithDropCallback(func(item int) { dropped = append(dropped, item) })

	for i := range 5 {
		window.Push(i)
	}

	require.Equal(t, slices.Collect(window.Iter()), []int{0, 1, 2})
	require.Equal(t, dropped, []int{3, 4})
	require.Equal(t, window.Drops(), 2)
}

func TestWindowDerive(t *testing.T) {
	window := buffer.Window[int](2, buffer.DropOldest)
	window.Push(1)

	derived := window.Derive()
	require.Equal(t, derived.Size(), 0)

	for i := range 4 {
		derived.Push(i)
	}
	require.Equal(t, slices.Collect(derived.Iter()), []int{2, 3})
	require.Equal(t, slices.Collect(window.Iter()), []int{1})
}

func TestOverflowPolicyString(t *testing.T) {
	require.Equal(t, buffer.DropOldest.String(), "DropOldest")
	require.Equal(t, buffer.DropNewest.String(), "DropNewest")
	require.Equal(t, buffer.OverflowPolicy(7).String(), "Unknown")
}
