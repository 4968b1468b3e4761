package archive

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool reuses lz4.Compressor state across writes.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// Stored lz4 payloads start with a marker byte. CompressBlock refuses
// payloads it cannot shrink by returning zero, so those are stored as raw
// literals behind the lz4Raw marker instead of being dropped.
const (
	lz4Raw   = 0x00
	lz4Block = 0x01
)

// LZ4Codec compresses artifacts in LZ4 block format, favoring
// decompression speed over ratio.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates an LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses data in marker-prefixed LZ4 block format.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))
	dst[0] = lz4Block

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Incompressible payload, keep the literals.
		dst[0] = lz4Raw

		return append(dst[:1], data...), nil
	}

	return dst[:1+n], nil
}

// Decompress restores data written by Compress. The block format does not
// record the original size, so the output buffer starts at four times the
// input and doubles until the block fits, capped at 64MB against corrupt
// length fields.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	payload := data[1:]
	switch data[0] {
	case lz4Raw:
		return append([]byte(nil), payload...), nil
	case lz4Block:
	default:
		return nil, fmt.Errorf("lz4 decompress: unknown marker 0x%02x", data[0])
	}

	const maxSize = 64 * 1024 * 1024

	bufSize := len(payload) * 4
	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(payload, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
