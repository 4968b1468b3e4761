package archive

// ZstdCodec compresses artifacts with Zstandard, the default scheme.
// Posterior-draw tables shrink to a small fraction of their CSV size and
// decompression stays cheap enough for interactive reloads.
//
// Two implementations share this type. The default build uses the pure-Go
// klauspost/compress encoder; building with the gozstd tag swaps in cgo
// bindings to libzstd for a better ratio at the same level.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstandard codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
