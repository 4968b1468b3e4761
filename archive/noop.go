package archive

// NoopCodec passes artifact payloads through unchanged, keeping files
// directly readable on disk. Also the baseline in codec benchmarks.
type NoopCodec struct{}

var _ Codec = (*NoopCodec)(nil)

// NewNoopCodec creates a pass-through codec.
func NewNoopCodec() NoopCodec {
	return NoopCodec{}
}

// Compress returns data unchanged. The result aliases the input.
func (c NoopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged. The result aliases the input.
func (c NoopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
