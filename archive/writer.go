package archive

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arloliu/tailfit/bayes"
	"github.com/arloliu/tailfit/dataset"
	"github.com/arloliu/tailfit/errs"
	"github.com/arloliu/tailfit/internal/options"
	"github.com/arloliu/tailfit/internal/pool"
)

type writerConfig struct {
	compression Compression
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*writerConfig]

// WithCompression selects the codec applied to written artifacts.
// The default is Zstd.
//
// Returns errs.ErrUnsupportedCompression for unknown schemes.
func WithCompression(c Compression) WriterOption {
	return options.New(func(cfg *writerConfig) error {
		if _, ok := builtinCodecs[c]; !ok {
			return fmt.Errorf("compression %q: %w", string(c), errs.ErrUnsupportedCompression)
		}
		cfg.compression = c

		return nil
	})
}

// Writer persists run artifacts under a single directory, one file per
// artifact, all compressed with the configured codec. File names are the
// artifact name plus ".csv" or ".txt" plus the codec extension.
type Writer struct {
	dir         string
	compression Compression
	codec       Codec
}

// NewWriter creates dir if needed and returns a Writer bound to it.
func NewWriter(dir string, opts ...WriterOption) (*Writer, error) {
	cfg := &writerConfig{compression: Zstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	return &Writer{dir: dir, compression: cfg.compression, codec: codec}, nil
}

// Dir returns the artifact directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Compression returns the active compression scheme.
func (w *Writer) Compression() Compression {
	return w.compression
}

// WriteTable writes a CSV artifact with the given header and rows.
// The name is the file name without extensions.
func (w *Writer) WriteTable(name string, header []string, rows [][]string) (ArtifactInfo, error) {
	buf := pool.GetArtifactBuffer()
	defer pool.PutArtifactBuffer(buf)

	cw := csv.NewWriter(buf)
	if err := cw.Write(header); err != nil {
		return ArtifactInfo{}, fmt.Errorf("write header: %w", err)
	}
	// WriteAll flushes and reports any deferred write error.
	if err := cw.WriteAll(rows); err != nil {
		return ArtifactInfo{}, fmt.Errorf("write rows: %w", err)
	}

	return w.store(name+".csv", buf.Bytes())
}

// WriteDataset writes the observations as an index,x,y table. Values use
// the shortest decimal form that parses back to the identical float, so a
// stored dataset reloads with the same fingerprint.
func (w *Writer) WriteDataset(name string, ds *dataset.Dataset) (ArtifactInfo, error) {
	if ds == nil {
		return ArtifactInfo{}, fmt.Errorf("nil dataset: %w", errs.ErrTooFewObservations)
	}

	rows := make([][]string, 0, ds.Len())
	for obs := range ds.All() {
		rows = append(rows, []string{
			strconv.Itoa(obs.Index),
			formatFloat(obs.X),
			formatFloat(obs.Y),
		})
	}

	return w.WriteTable(name, []string{"index", "x", "y"}, rows)
}

// WriteDraws writes the posterior draws of a fit, one column per
// parameter in natural space, one row per retained draw across all
// chains.
func (w *Writer) WriteDraws(name string, fit *bayes.Fit) (ArtifactInfo, error) {
	if fit == nil {
		return ArtifactInfo{}, fmt.Errorf("nil fit: %w", errs.ErrNoFits)
	}

	draws := fit.Draws()
	total, dim := draws.Dims()

	rows := make([][]string, total)
	for s := range total {
		row := make([]string, dim)
		for j := range dim {
			row[j] = formatFloat(draws.At(s, j))
		}
		rows[s] = row
	}

	return w.WriteTable(name, fit.Family.ParamNames(), rows)
}

// WriteText writes a rendered text artifact, such as a comparison report.
func (w *Writer) WriteText(name, text string) (ArtifactInfo, error) {
	return w.store(name+".txt", []byte(text))
}

// store compresses raw and writes it to dir/name plus the codec
// extension.
func (w *Writer) store(name string, raw []byte) (ArtifactInfo, error) {
	stored, err := w.codec.Compress(raw)
	if err != nil {
		return ArtifactInfo{}, fmt.Errorf("compress %s: %w", name, err)
	}

	path := filepath.Join(w.dir, name+w.compression.Ext())
	if err := os.WriteFile(path, stored, 0o644); err != nil {
		return ArtifactInfo{}, fmt.Errorf("write %s: %w", name, err)
	}

	return ArtifactInfo{
		Path:        path,
		Compression: w.compression,
		RawSize:     len(raw),
		StoredSize:  len(stored),
	}, nil
}

// ReadTable loads a CSV artifact written by WriteTable, detecting the
// codec from the file extension.
func ReadTable(path string) (header []string, rows [][]string, err error) {
	stored, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	codec, err := GetCodec(compressionForExt(filepath.Ext(path)))
	if err != nil {
		return nil, nil, err
	}
	raw, err := codec.Decompress(stored)
	if err != nil {
		return nil, nil, fmt.Errorf("decompress %s: %w", path, err)
	}

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("parse %s: empty table", path)
	}

	return records[0], records[1:], nil
}

// ReadDataset loads a dataset artifact written by WriteDataset. The
// loaded dataset carries the Derived variant; identity with the original
// can be checked through Fingerprint.
func ReadDataset(path string) (*dataset.Dataset, error) {
	header, rows, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	if len(header) != 3 || header[0] != "index" || header[1] != "x" || header[2] != "y" {
		return nil, fmt.Errorf("%s: not a dataset table (header %v)", path, header)
	}

	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("%s: row %d has %d fields, want 3", path, i, len(row))
		}
		if xs[i], err = strconv.ParseFloat(row[1], 64); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
		if ys[i], err = strconv.ParseFloat(row[2], 64); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i, err)
		}
	}

	return dataset.New(xs, ys, dataset.Derived)
}

// formatFloat renders v in the shortest form that round-trips exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
