package buffer_test

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"github.com/teenjuna/deq/buffer"
	"github.com/teenjuna/deq/internal/testing/require"
)

type Item struct {
	ID string
	N1 int
	N2 int
}

func input() []Item {
	var items []Item
	for i := range 1000 {
		items = append(items, Item{
			ID: strconv.Itoa(i),
			N1: rand.IntN(1000),
			N2: rand.IntN(1000),
		})
	}
	return items
}

func TestDequeBuffer(t *testing.T) {
	input := input()

	buffer := buffer.Deque[Item](16)
	require.Equal(t, buffer.Size(), 0)

	for i, item := range input {
		buffer.Push(item)
		require.Equal(t, buffer.Size(), i+1)
		require.Equal(t, buffer.Pushes(), i+1)
	}

	items := slices.Collect(buffer.Iter())
	require.Equal(t, len(items), buffer.Size())
	require.Equal(t, items, input)

	for _, want := range input[:10] {
		item, ok := buffer.Pop()
		require.Equal(t, ok, true)
		require.Equal(t, item, want)
	}
	require.Equal(t, slices.Collect(buffer.Iter()), input[10:])
	require.Equal(t, buffer.Pushes(), len(input))

	buffer.Reset()

	items = slices.Collect(buffer.Iter())
	require.Equal(t, buffer.Size(), 0)
	require.Equal(t, buffer.Pushes(), 0)
	require.Equal(t, len(items), 0)

	_, ok := buffer.Pop()
	require.Equal(t, ok, false)

	derived := buffer.Derive()
	derived.Push(input[0])
	require.Equal(t, derived.Size(), 1)
	require.Equal(t, buffer.Size(), 0)
}
