package pool

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferWrite(t *testing.T) {
	bb := NewByteBuffer(8)

	n, err := bb.Write([]byte("index,x,y\n"))
	require.NoError(t, err)
	require.Equal(t, 10, n)

	_, err = bb.Write([]byte("0,-2.5,10\n"))
	require.NoError(t, err)

	assert.Equal(t, "index,x,y\n0,-2.5,10\n", string(bb.Bytes()))
	assert.Equal(t, 20, bb.Len())

	bb.Reset()
	assert.Zero(t, bb.Len())
	assert.GreaterOrEqual(t, cap(bb.B), 20, "Reset must retain capacity")
}

// The buffer is the io.Writer behind csv.Writer in the archive package.
func TestByteBufferAsCSVTarget(t *testing.T) {
	bb := NewByteBuffer(16)

	w := csv.NewWriter(bb)
	require.NoError(t, w.Write([]string{"model", "elpd"}))
	require.NoError(t, w.Write([]string{"gaussian", "-187.2"}))
	w.Flush()
	require.NoError(t, w.Error())

	lines := strings.Split(strings.TrimSpace(string(bb.Bytes())), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "model,elpd", lines[0])
}

func TestByteBufferPool(t *testing.T) {
	t.Run("get returns empty buffer", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		bb := p.Get()
		require.NotNil(t, bb)
		assert.Zero(t, bb.Len())
	})

	t.Run("put resets before reuse", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		bb := p.Get()
		_, _ = bb.Write([]byte("stale"))
		p.Put(bb)

		got := p.Get()
		assert.Zero(t, got.Len())
	})

	t.Run("oversized buffers are discarded", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		bb := &ByteBuffer{B: make([]byte, 0, 128)}
		p.Put(bb) // must not panic; buffer is simply dropped

		got := p.Get()
		assert.LessOrEqual(t, cap(got.B), 64)
	})

	t.Run("nil put is a no-op", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		p.Put(nil)
	})
}

func TestSharedArtifactPool(t *testing.T) {
	bb := GetArtifactBuffer()
	require.NotNil(t, bb)
	_, _ = bb.Write([]byte("draws"))
	PutArtifactBuffer(bb)
}
