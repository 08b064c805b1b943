package json

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/teenjuna/deq/codec"
)

// Codec encodes items as a single JSON array.
type Codec[Item any] struct {
	buf *bytes.Buffer
}

var _ codec.Codec[any] = (*Codec[any])(nil)

func New[Item any]() *Codec[Item] {
	return &Codec[Item]{
		buf: new(bytes.Buffer),
	}
}

func (c *Codec[Item]) Encode(items iter.Seq[Item]) ([]byte, error) {
	c.buf.Reset()
	c.buf.WriteByte('[')

	first := true
	for item := range items {
		if !first {
			c.buf.WriteByte(',')
		}
		first = false

		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		c.buf.Write(data)
	}
	c.buf.WriteByte(']')

	res := c.buf.Bytes()
	out := make([]byte, len(res))
	copy(out, res)

	return out, nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item)) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	for _, item := range items {
		push(item)
	}

	return nil
}

func (c *Codec[Item]) Derive() codec.Codec[Item] {
	return New[Item]()
}
