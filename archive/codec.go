package archive

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arloliu/tailfit/errs"
)

// Compression selects the codec applied to written artifacts.
type Compression string

// Supported compression schemes.
const (
	None Compression = "none"
	Zstd Compression = "zstd"
	S2   Compression = "s2"
	LZ4  Compression = "lz4"
)

// Ext returns the extension appended to artifact file names written under
// this scheme, or "" for None.
func (c Compression) Ext() string {
	switch c {
	case Zstd:
		return ".zst"
	case S2:
		return ".s2"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression converts a scheme name, as used in flags and config,
// into a Compression. Matching is case-insensitive.
//
// Returns errs.ErrUnsupportedCompression for unknown names.
func ParseCompression(s string) (Compression, error) {
	c := Compression(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := builtinCodecs[c]; ok {
		return c, nil
	}

	names := make([]string, 0, len(builtinCodecs))
	for name := range builtinCodecs {
		names = append(names, string(name))
	}
	sort.Strings(names)

	return "", fmt.Errorf("compression %q (supported: %s): %w", s, strings.Join(names, ", "), errs.ErrUnsupportedCompression)
}

// compressionForExt recovers the scheme from a stored artifact's
// extension. Unrecognized extensions mean the payload was stored raw.
func compressionForExt(ext string) Compression {
	switch ext {
	case ".zst":
		return Zstd
	case ".s2":
		return S2
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// Codec compresses and decompresses artifact payloads. Implementations
// are stateless or internally pooled, and safe for concurrent use.
//
// Both methods return newly allocated slices and leave the input
// unmodified, except for NoopCodec which aliases its input.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// CreateCodec creates a fresh Codec for the given scheme, for callers
// that want codec state isolated from the shared built-ins.
//
// Returns errs.ErrUnsupportedCompression for unknown schemes.
func CreateCodec(c Compression) (Codec, error) {
	switch c {
	case None:
		return NewNoopCodec(), nil
	case Zstd:
		return NewZstdCodec(), nil
	case S2:
		return NewS2Codec(), nil
	case LZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("compression %q: %w", string(c), errs.ErrUnsupportedCompression)
	}
}

var builtinCodecs = map[Compression]Codec{
	None: NewNoopCodec(),
	Zstd: NewZstdCodec(),
	S2:   NewS2Codec(),
	LZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the shared built-in Codec for the given scheme.
//
// Returns errs.ErrUnsupportedCompression for unknown schemes.
func GetCodec(c Compression) (Codec, error) {
	if codec, ok := builtinCodecs[c]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compression %q: %w", string(c), errs.ErrUnsupportedCompression)
}

// ArtifactInfo describes one artifact written to disk.
type ArtifactInfo struct {
	// Path is the full path of the stored file, extension included.
	Path string

	// Compression is the scheme the payload was stored under.
	Compression Compression

	// RawSize is the payload size before compression, in bytes.
	RawSize int

	// StoredSize is the size on disk, in bytes.
	StoredSize int
}

// Ratio returns stored size over raw size. Values below 1.0 mean the
// codec saved space. Returns 0 for an empty artifact.
func (a ArtifactInfo) Ratio() float64 {
	if a.RawSize == 0 {
		return 0
	}

	return float64(a.StoredSize) / float64(a.RawSize)
}

// Savings returns the space saved as a percentage of the raw size.
func (a ArtifactInfo) Savings() float64 {
	return (1 - a.Ratio()) * 100
}
