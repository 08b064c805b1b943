package snapshot_test

import (
	"path"
	"slices"
	"strconv"
	"testing"

	"github.com/teenjuna/deq"
	"github.com/teenjuna/deq/codec/gob"
	"github.com/teenjuna/deq/codec/json"
	"github.com/teenjuna/deq/internal/testing/require"
	"github.com/teenjuna/deq/retry"
	"github.com/teenjuna/deq/snapshot"
)

type Item struct {
	ID string
	N  int
}

func TestSaveLoad(t *testing.T) {
	run(t, func(t *testing.T, store *snapshot.Store) {
		d := deq.New[Item](func(c *deq.Config) { c.Capacity(8) })
		var items []Item
		for i := range 6 {
			item := Item{ID: strconv.Itoa(i), N: i * i}
			if i%2 == 0 {
				d.PushFront(item)
				items = slices.Insert(items, 0, item)
			} else {
				d.PushBack(item)
				items = append(items, item)
			}
		}

		id, err := snapshot.Save(t.Context(), store, "numbers", json.New[Item](), d)
		require.Nil(t, err)
		require.NotEqual(t, id, "")

		loaded, err := snapshot.Load(t.Context(), store, "numbers", json.New[Item]())
		require.Nil(t, err)
		require.Equal(t, slices.Collect(loaded.Values()), items)
		require.Equal(t, loaded.Capacity(), d.Capacity())

		// The restored deque is independent of the saved one.
		loaded.PushBack(Item{ID: "x"})
		require.Equal(t, d.Size(), 6)
	})
}

func TestLoadConfig(t *testing.T) {
	run(t, func(t *testing.T, store *snapshot.Store) {
		d := deq.New[int]()
		d.PushBack(1)
		d.PushBack(2)

		_, err := snapshot.Save(t.Context(), store, "small", gob.New[int](), d)
		require.Nil(t, err)

		loaded, err := snapshot.Load(
			t.Context(), store, "small", gob.New[int](),
			func(c *deq.Config) { c.Capacity(32) },
		)
		require.Nil(t, err)
		require.Equal(t, loaded.Capacity(), 32)
		require.Equal(t, slices.Collect(loaded.Values()), []int{1, 2})
	})
}

func TestSaveEmpty(t *testing.T) {
	run(t, func(t *testing.T, store *snapshot.Store) {
		var d deq.Deque[int]
		_, err := snapshot.Save(t.Context(), store, "empty", gob.New[int](), &d)
		require.Nil(t, err)

		loaded, err := snapshot.Load(t.Context(), store, "empty", gob.New[int]())
		require.Nil(t, err)
		require.Equal(t, loaded.Size(), 0)
		require.Equal(t, loaded.Capacity(), 0)
	})
}

func TestReplaceAndDelete(t *testing.T) {
	run(t, func(t *testing.T, store *snapshot.Store) {
		d := deq.New[int]()
		d.PushBack(1)
		id1, err := snapshot.Save(t.Context(), store, "a", json.New[int](), d)
		require.Nil(t, err)

		d.PushFront(0)
		id2, err := snapshot.Save(t.Context(), store, "a", json.New[int](), d)
		require.Nil(t, err)
		require.NotEqual(t, id1, id2)

		loaded, err := snapshot.Load(t.Context(), store, "a", json.New[int]())
		require.Nil(t, err)
		require.Equal(t, slices.Collect(loaded.Values()), []int{0, 1})

		require.Nil(t, store.Delete(t.Context(), "a"))
		require.ErrorIs(t, store.Delete(t.Context(), "a"), snapshot.ErrNotFound)

		_, err = snapshot.Load(t.Context(), store, "a", json.New[int]())
		require.ErrorIs(t, err, snapshot.ErrNotFound)
	})
}

func TestSaveAllAndList(t *testing.T) {
	run(t, func(t *testing.T, store *snapshot.Store) {
		deques := make(map[string]*deq.Deque[int])
		for i := range 5 {
			d := deq.New[int]()
			for j := range i {
				d.PushFront(j)
			}
			deques["d"+strconv.Itoa(i)] = d
		}

		ids, err := snapshot.SaveAll(t.Context(), store, json.New[int](), deques)
		require.Nil(t, err)
		require.Equal(t, len(ids), 5)

		infos, err := store.List(t.Context())
		require.Nil(t, err)
		require.Equal(t, len(infos), 5)
		for i, info := range infos {
			name := "d" + strconv.Itoa(i)
			require.Equal(t, info.Name, name)
			require.Equal(t, info.ID, ids[name])
			require.Equal(t, info.Size, i)
			require.Equal(t, info.Capacity, deques[name].Capacity())
		}

		for name, d := range deques {
			loaded, err := snapshot.Load(t.Context(), store, name, json.New[int]())
			require.Nil(t, err)
			require.Equal(t, slices.Equal(slices.Collect(loaded.Values()), slices.Collect(d.Values())), true)
		}
	})
}

func TestDecodeMismatch(t *testing.T) {
	run(t, func(t *testing.T, store *snapshot.Store) {
		d := deq.New[string]()
		d.PushBack("a")
		_, err := snapshot.Save(t.Context(), store, "strings", json.New[string](), d)
		require.Nil(t, err)

		_, err = snapshot.Load(t.Context(), store, "strings", json.New[int]())
		require.NotNil(t, err)
	})
}

func TestClosed(t *testing.T) {
	store, err := snapshot.Open()
	require.Nil(t, err)
	require.Nil(t, store.Close())

	_, err = snapshot.Save(t.Context(), store, "a", json.New[int](), deq.New[int]())
	require.ErrorIs(t, err, snapshot.ErrClosed)
}

func run(t *testing.T, fn func(t *testing.T, store *snapshot.Store)) {
	t.Helper()
	open := func(t *testing.T, file string) *snapshot.Store {
		store, err := snapshot.Open(func(c *snapshot.Config) {
			c.File(file)
			c.Durable(true)
			c.Workers(2)
			c.RetryPolicy(retry.Immediate(3))
		})
		require.Nil(t, err)
		t.Cleanup(func() {
			if err := store.Close(); err != nil {
				t.Fatalf("close store: %v", err)
			}
		})
		return store
	}
	t.Run("In file", func(t *testing.T) {
		t.Helper()
		fn(t, open(t, path.Join(t.TempDir(), "file")))
	})
	t.Run("In memory", func(t *testing.T) {
		t.Helper()
		fn(t, open(t, ":memory:"))
	})
}
