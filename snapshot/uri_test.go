package snapshot

import (
	"testing"

	"github.com/teenjuna/deq/internal/testing/require"
)

func TestURI(t *testing.T) {
	uri := func(file string, durable bool) string {
		c := &Config{}
		c.File(file)
		c.Durable(durable)
		return c.uri()
	}

	require.Equal(t, uri("myfile", false), "myfile")
	require.Equal(t, uri("myfile", true), "myfile?_sync=full")
	require.Equal(t, uri(":memory:", true), ":memory:")
}
