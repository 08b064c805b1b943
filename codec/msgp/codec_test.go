package msgp_test

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	tmsgp "github.com/tinylib/msgp/msgp"

	"github.com/teenjuna/deq"
	"github.com/teenjuna/deq/codec/msgp"
	"github.com/teenjuna/deq/internal/testing/require"
)

type Item struct {
	ID string
	N1 int
	N2 float64
}

func (z *Item) MarshalMsg(b []byte) ([]byte, error) {
	b = tmsgp.AppendArrayHeader(b, 3)
	b = tmsgp.AppendString(b, z.ID)
	b = tmsgp.AppendInt(b, z.N1)
	b = tmsgp.AppendFloat64(b, z.N2)
	return b, nil
}

func (z *Item) UnmarshalMsg(b []byte) ([]byte, error) {
	n, b, err := tmsgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return b, err
	}
	if n != 3 {
		return b, tmsgp.ArrayError{Wanted: 3, Got: n}
	}
	if z.ID, b, err = tmsgp.ReadStringBytes(b); err != nil {
		return b, err
	}
	if z.N1, b, err = tmsgp.ReadIntBytes(b); err != nil {
		return b, err
	}
	if z.N2, b, err = tmsgp.ReadFloat64Bytes(b); err != nil {
		return b, err
	}
	return b, nil
}

func TestCodec(t *testing.T) {
	d := deq.New[Item]()
	codec := msgp.New[Item]()

	for range 2 {
		d.Clear()

		var items []Item
		for i := range 1000 {
			item := Item{
				ID: strconv.Itoa(i),
				N1: rand.IntN(1000),
				N2: rand.Float64() * 1000,
			}
			items = append(items, item)
			d.PushBack(item)
		}
		for range 10 {
			item, _ := d.PopFront()
			d.PushBack(item)
		}
		items = append(slices.Clone(items[10:]), items[:10]...)

		data, err := codec.Encode(d.Values())
		require.Nil(t, err)
		require.NotEqual(t, len(data), 0)

		decoded := deq.New[Item]()
		err = codec.Decode(data, decoded.PushBack)
		require.Nil(t, err)
		require.Equal(t, slices.Collect(decoded.Values()), items)

		derived := codec.Derive()
		require.NotEqual(t, derived, codec)
	}
}

func TestCodecShortData(t *testing.T) {
	codec := msgp.New[Item]()
	data, err := codec.Encode(slices.Values([]Item{{ID: "a", N1: 1, N2: 2}}))
	require.Nil(t, err)

	var items []Item
	err = codec.Decode(data[:len(data)-1], func(item Item) { items = append(items, item) })
	require.NotNil(t, err)
	require.Equal(t, len(items), 0)
}
