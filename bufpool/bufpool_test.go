package bufpool_test

import (
	"bytes"
	"testing"

	"github.com/secmon/alertfwd/bufpool"
	"github.com/stretchr/testify/require"
)

func TestPool_Get(t *testing.T) {
	p := bufpool.New()

	b := p.Get()
	require.Zero(t, b.Len())
	b.WriteString(`{"data":{}}`)
	require.Equal(t, `{"data":{}}`, b.String())
	require.NoError(t, b.Close())

	// Whatever buffer comes next, it starts out empty.
	b = p.Get()
	require.Zero(t, b.Len())
	require.NoError(t, b.Close())
}

func TestPool_LargeBuffer(t *testing.T) {
	p := bufpool.New()

	b := p.Get()
	b.Write(bytes.Repeat([]byte("x"), 2<<20))
	require.NoError(t, b.Close())

	b = p.Get()
	require.Zero(t, b.Len())
}
