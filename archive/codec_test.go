package archive

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tailfit/errs"
)

// ==== helpers ====

// tablePayload builds a deterministic CSV-like payload resembling the
// draw tables the codecs see in practice.
func tablePayload(rows int) []byte {
	rng := rand.New(rand.NewPCG(99, 1))

	var sb strings.Builder
	sb.WriteString("intercept,slope,sigma\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "%.6f,%.6f,%.6f\n", rng.NormFloat64(), rng.NormFloat64(), 1+rng.Float64())
	}

	return []byte(sb.String())
}

func allSchemes() []Compression {
	return []Compression{None, Zstd, S2, LZ4}
}

// ==== compression scheme ====

func TestCompressionExt(t *testing.T) {
	tests := []struct {
		scheme Compression
		ext    string
	}{
		{None, ""},
		{Zstd, ".zst"},
		{S2, ".s2"},
		{LZ4, ".lz4"},
		{Compression("bogus"), ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.ext, tt.scheme.Ext(), "scheme %q", tt.scheme)
	}
}

func TestParseCompression(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		for _, scheme := range allSchemes() {
			parsed, err := ParseCompression(string(scheme))
			require.NoError(t, err)
			require.Equal(t, scheme, parsed)
		}
	})

	t.Run("Normalizes", func(t *testing.T) {
		parsed, err := ParseCompression("  ZSTD ")
		require.NoError(t, err)
		require.Equal(t, Zstd, parsed)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseCompression("brotli")
		require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
		require.Contains(t, err.Error(), "supported: lz4, none, s2, zstd")
	})
}

func TestCompressionForExt(t *testing.T) {
	require.Equal(t, Zstd, compressionForExt(".zst"))
	require.Equal(t, S2, compressionForExt(".s2"))
	require.Equal(t, LZ4, compressionForExt(".lz4"))
	require.Equal(t, None, compressionForExt(".csv"))
	require.Equal(t, None, compressionForExt(""))
}

func TestGetCodec(t *testing.T) {
	for _, scheme := range allSchemes() {
		codec, err := GetCodec(scheme)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(Compression("bogus"))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestCreateCodec(t *testing.T) {
	for _, scheme := range allSchemes() {
		codec, err := CreateCodec(scheme)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(Compression("bogus"))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

// ==== codec behavior ====

func TestAllCodecsRoundTrip(t *testing.T) {
	payload := tablePayload(400)

	for _, scheme := range allSchemes() {
		t.Run(string(scheme), func(t *testing.T) {
			codec, err := GetCodec(scheme)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)

			if scheme != None {
				require.Less(t, len(compressed), len(payload), "expected %s to shrink a repetitive table", scheme)
			}
		})
	}
}

func TestAllCodecsEmptyData(t *testing.T) {
	for _, scheme := range allSchemes() {
		t.Run(string(scheme), func(t *testing.T) {
			codec, err := GetCodec(scheme)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestRealCodecsRejectGarbage(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef}

	for _, scheme := range []Compression{Zstd, S2, LZ4} {
		t.Run(string(scheme), func(t *testing.T) {
			codec, err := GetCodec(scheme)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestLZ4IncompressiblePayload(t *testing.T) {
	// High-entropy bytes defeat the block matcher, forcing the raw
	// literal path.
	rng := rand.New(rand.NewPCG(7, 7))
	payload := make([]byte, 512)
	for i := range payload {
		payload[i] = byte(rng.IntN(256))
	}

	codec := NewLZ4Codec()
	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, byte(lz4Raw), compressed[0])
	require.Len(t, compressed, len(payload)+1)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}

func TestCodecsConcurrentUse(t *testing.T) {
	payload := tablePayload(100)

	var wg sync.WaitGroup
	for _, scheme := range allSchemes() {
		codec, err := GetCodec(scheme)
		require.NoError(t, err)

		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					compressed, err := codec.Compress(payload)
					if err != nil {
						t.Errorf("compress: %v", err)
						return
					}
					restored, err := codec.Decompress(compressed)
					if err != nil {
						t.Errorf("decompress: %v", err)
						return
					}
					if len(restored) != len(payload) {
						t.Errorf("round trip changed size: %d != %d", len(restored), len(payload))
						return
					}
				}
			}()
		}
	}
	wg.Wait()
}

// ==== artifact info ====

func TestArtifactInfoRatio(t *testing.T) {
	info := ArtifactInfo{RawSize: 1000, StoredSize: 250}
	require.InDelta(t, 0.25, info.Ratio(), 1e-12)
	require.InDelta(t, 75.0, info.Savings(), 1e-12)

	empty := ArtifactInfo{}
	require.Zero(t, empty.Ratio())
}

// ==== benchmarks ====

func BenchmarkCodecCompress(b *testing.B) {
	payload := tablePayload(4000)

	for _, scheme := range allSchemes() {
		codec, err := GetCodec(scheme)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(string(scheme), func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for b.Loop() {
				if _, err := codec.Compress(payload); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCodecDecompress(b *testing.B) {
	payload := tablePayload(4000)

	for _, scheme := range allSchemes() {
		codec, err := GetCodec(scheme)
		if err != nil {
			b.Fatal(err)
		}
		compressed, err := codec.Compress(payload)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(string(scheme), func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for b.Loop() {
				if _, err := codec.Decompress(compressed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
