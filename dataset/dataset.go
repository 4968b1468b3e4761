package dataset

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/tailfit/errs"
	"github.com/arloliu/tailfit/internal/hash"
)

// Variant identifies how a Dataset was produced.
type Variant int

const (
	// Clean marks a dataset drawn directly from the simulator.
	Clean Variant = iota
	// Outlier marks a dataset derived from a clean one by outlier injection.
	Outlier
	// Derived marks a dataset produced by row manipulation such as Drop.
	Derived
)

var variantNames = map[Variant]string{
	Clean:   "clean",
	Outlier: "outlier",
	Derived: "derived",
}

// String returns the lower-case name of the variant.
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}

	return fmt.Sprintf("variant(%d)", int(v))
}

// Observation is a single (x, y) row of a Dataset.
type Observation struct {
	Index int
	X     float64
	Y     float64
}

// Dataset is an immutable, ordered collection of observations stored as x
// and y columns. All derivation methods return new datasets; the receiver
// is never modified.
type Dataset struct {
	xs          []float64
	ys          []float64
	variant     Variant
	fingerprint uint64
}

// newDataset takes ownership of xs and ys.
func newDataset(xs, ys []float64, variant Variant) *Dataset {
	return &Dataset{
		xs:          xs,
		ys:          ys,
		variant:     variant,
		fingerprint: hash.Columns(xs, ys),
	}
}

// New creates a Dataset from x and y columns of equal, non-zero length.
// The columns are copied; later changes to the arguments do not affect the
// dataset. Unlike Simulate, New does not sort by x.
//
// Returns errs.ErrLengthMismatch if the columns differ in length, and
// errs.ErrTooFewObservations if they are empty.
func New(xs, ys []float64, variant Variant) (*Dataset, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("x has %d values, y has %d: %w", len(xs), len(ys), errs.ErrLengthMismatch)
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("empty columns: %w", errs.ErrTooFewObservations)
	}

	return newDataset(slices.Clone(xs), slices.Clone(ys), variant), nil
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.xs)
}

// At returns the observation at index i. It panics if i is out of range,
// matching slice indexing semantics.
func (d *Dataset) At(i int) Observation {
	if i < 0 || i >= len(d.xs) {
		panic(fmt.Sprintf("dataset: index %d out of range [0, %d)", i, len(d.xs)))
	}

	return Observation{Index: i, X: d.xs[i], Y: d.ys[i]}
}

// All returns an iterator over the observations in order.
func (d *Dataset) All() iter.Seq[Observation] {
	return func(yield func(Observation) bool) {
		for i := range d.xs {
			if !yield(Observation{Index: i, X: d.xs[i], Y: d.ys[i]}) {
				return
			}
		}
	}
}

// X returns a copy of the x column.
func (d *Dataset) X() []float64 {
	return slices.Clone(d.xs)
}

// Y returns a copy of the y column.
func (d *Dataset) Y() []float64 {
	return slices.Clone(d.ys)
}

// XStats returns the sample mean and standard deviation of the x column.
func (d *Dataset) XStats() (mean, std float64) {
	return stat.MeanStdDev(d.xs, nil)
}

// YStats returns the sample mean and standard deviation of the y column.
func (d *Dataset) YStats() (mean, std float64) {
	return stat.MeanStdDev(d.ys, nil)
}

// Variant returns how this dataset was produced.
func (d *Dataset) Variant() Variant {
	return d.variant
}

// Fingerprint returns the xxHash64 digest of the x and y columns. Datasets
// with identical contents share a fingerprint regardless of variant; any
// bit-level difference in the data changes it.
func (d *Dataset) Fingerprint() uint64 {
	return d.fingerprint
}

// IsSortedByX reports whether the x column is in ascending order.
func (d *Dataset) IsSortedByX() bool {
	return slices.IsSorted(d.xs)
}

// Equal reports whether two datasets have the same variant and bit-identical
// columns.
func (d *Dataset) Equal(other *Dataset) bool {
	if d == nil || other == nil {
		return d == other
	}

	return d.variant == other.variant &&
		slices.Equal(d.xs, other.xs) &&
		slices.Equal(d.ys, other.ys)
}

// String returns a short human-readable summary.
func (d *Dataset) String() string {
	return fmt.Sprintf("Dataset{variant: %s, n: %d, fingerprint: %016x}", d.variant, d.Len(), d.fingerprint)
}

// WithOutliers returns a copy of the dataset with the y values of the
// len(ys) smallest-x rows replaced by the given constants, in ascending-x
// order. The result is tagged Outlier; the receiver is unchanged. The rows
// are located by x rank, so the dataset does not need to be sorted.
//
// Returns errs.ErrInvalidOutlierCount unless 1 <= len(ys) < d.Len().
func (d *Dataset) WithOutliers(ys ...float64) (*Dataset, error) {
	if len(ys) == 0 || len(ys) >= d.Len() {
		return nil, fmt.Errorf("%d outliers for %d observations: %w", len(ys), d.Len(), errs.ErrInvalidOutlierCount)
	}

	order := d.ascendingXOrder()
	nys := slices.Clone(d.ys)
	for k, y := range ys {
		nys[order[k]] = y
	}

	return newDataset(slices.Clone(d.xs), nys, Outlier), nil
}

// ascendingXOrder returns row indices sorted by ascending x.
func (d *Dataset) ascendingXOrder() []int {
	order := make([]int, len(d.xs))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(d.xs[a], d.xs[b])
	})

	return order
}

// Drop returns a copy of the dataset without the rows at the given indices,
// tagged Derived and reindexed from 0. Duplicate indices are allowed.
// Dropping nothing returns a plain copy with the variant preserved.
//
// Returns errs.ErrIndexOutOfRange for an invalid index and
// errs.ErrTooFewObservations if no rows would remain.
func (d *Dataset) Drop(indices ...int) (*Dataset, error) {
	if len(indices) == 0 {
		return newDataset(slices.Clone(d.xs), slices.Clone(d.ys), d.variant), nil
	}

	drop := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= d.Len() {
			return nil, fmt.Errorf("index %d with %d observations: %w", idx, d.Len(), errs.ErrIndexOutOfRange)
		}
		drop[idx] = struct{}{}
	}
	if d.Len() == len(drop) {
		return nil, fmt.Errorf("dropping all %d observations: %w", d.Len(), errs.ErrTooFewObservations)
	}

	xs := make([]float64, 0, d.Len()-len(drop))
	ys := make([]float64, 0, d.Len()-len(drop))
	for i := range d.xs {
		if _, ok := drop[i]; ok {
			continue
		}
		xs = append(xs, d.xs[i])
		ys = append(ys, d.ys[i])
	}

	return newDataset(xs, ys, Derived), nil
}
