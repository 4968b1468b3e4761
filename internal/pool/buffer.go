// Package pool provides pooled byte buffers for artifact encoding.
package pool

import (
	"sync"
)

const (
	// ArtifactBufferDefaultSize is the initial capacity of pooled buffers,
	// sized for a typical posterior-draw CSV (a few thousand rows).
	ArtifactBufferDefaultSize = 64 * 1024

	// ArtifactBufferMaxThreshold is the largest buffer the pool retains.
	// Larger buffers are dropped on Put to avoid pinning memory after an
	// unusually big export.
	ArtifactBufferMaxThreshold = 8 * 1024 * 1024
)

// ByteBuffer is a growable byte buffer that implements io.Writer, so it can
// back a csv.Writer directly before the bytes are handed to a codec.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Write appends p to the buffer, growing it as needed. It never fails.
func (bb *ByteBuffer) Write(p []byte) (int, error) {
	bb.B = append(bb.B, p...)
	return len(p), nil
}

// Bytes returns the accumulated bytes. The slice is only valid until the
// next Write or Reset.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of accumulated bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer, retaining capacity for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// ByteBufferPool pools ByteBuffers, discarding any that grew past a
// threshold.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize and
// are discarded on Put once their capacity exceeds maxThreshold
// (0 disables the threshold).
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var artifactPool = NewByteBufferPool(ArtifactBufferDefaultSize, ArtifactBufferMaxThreshold)

// GetArtifactBuffer retrieves a ByteBuffer from the shared artifact pool.
func GetArtifactBuffer() *ByteBuffer {
	return artifactPool.Get()
}

// PutArtifactBuffer returns a ByteBuffer to the shared artifact pool.
func PutArtifactBuffer(bb *ByteBuffer) {
	artifactPool.Put(bb)
}
