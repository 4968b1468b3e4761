package loo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/tailfit/bayes"
	"github.com/arloliu/tailfit/errs"
)

// Entry is one model's row in a ranking.
type Entry struct {
	Family bayes.Family
	ELPD   float64
	SE     float64
	PLoo   float64
	// DeltaELPD is the elpd difference to the best model (zero for the
	// best, negative otherwise), with its paired standard error DeltaSE.
	DeltaELPD float64
	DeltaSE   float64
	// MaxK is the model's largest Pareto shape.
	MaxK float64
}

// Ranking orders PSIS-LOO results of the same dataset by predictive
// accuracy.
type Ranking struct {
	Fingerprint uint64
	N           int
	// Entries are sorted by ELPD, best first.
	Entries []Entry
}

// Compare ranks results by elpd, best first.
//
// All results must come from fits of the same dataset; the elpd difference
// standard errors are computed pairwise over the shared observations,
// which is much tighter than combining the marginal standard errors.
//
// Returns errs.ErrNoFits when no results are given and
// errs.ErrMismatchedFits when the results disagree on dataset fingerprint
// or size.
func Compare(results ...*Result) (*Ranking, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("nothing to compare: %w", errs.ErrNoFits)
	}
	for _, r := range results {
		if r == nil {
			return nil, fmt.Errorf("nil result: %w", errs.ErrNoFits)
		}
	}

	base := results[0]
	for _, r := range results[1:] {
		if r.Fingerprint != base.Fingerprint || r.N != base.N {
			return nil, fmt.Errorf("results fit different datasets (%016x/%d vs %016x/%d): %w",
				base.Fingerprint, base.N, r.Fingerprint, r.N, errs.ErrMismatchedFits)
		}
	}

	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return results[order[a]].ELPD > results[order[b]].ELPD
	})

	best := results[order[0]]
	entries := make([]Entry, 0, len(results))
	diffs := make([]float64, base.N)
	for _, ri := range order {
		r := results[ri]
		entry := Entry{
			Family: r.Family,
			ELPD:   r.ELPD,
			SE:     r.SE,
			PLoo:   r.PLoo,
		}
		entry.MaxK, _ = r.MaxK()
		if r != best {
			for i := range diffs {
				diffs[i] = r.Points[i].ELPD - best.Points[i].ELPD
			}
			entry.DeltaELPD = r.ELPD - best.ELPD
			entry.DeltaSE = math.Sqrt(float64(base.N) * stat.Variance(diffs, nil))
		}
		entries = append(entries, entry)
	}

	return &Ranking{
		Fingerprint: base.Fingerprint,
		N:           base.N,
		Entries:     entries,
	}, nil
}

// Best returns the top-ranked entry.
func (r *Ranking) Best() Entry {
	return r.Entries[0]
}

// String renders the ranking as an aligned table.
func (r *Ranking) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %10s %8s %10s %8s %7s %7s\n",
		"model", "elpd", "se", "d_elpd", "d_se", "p_loo", "max_k")
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%-16s %10.2f %8.2f %10.2f %8.2f %7.2f %7.2f\n",
			e.Family, e.ELPD, e.SE, e.DeltaELPD, e.DeltaSE, e.PLoo, e.MaxK)
	}

	return b.String()
}
