package loo

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/tailfit/bayes"
	"github.com/arloliu/tailfit/dataset"
	"github.com/arloliu/tailfit/errs"
)

// Thresholds on the Pareto shape khat separating the diagnostic bands.
const (
	GoodMax = 0.5
	OkMax   = 0.7
	BadMax  = 1.0
)

// minTailLength is the smallest tail a generalized Pareto fit can use.
// Shorter tails report khat = +Inf instead.
const minTailLength = 5

// Band classifies a Pareto shape estimate.
type Band int

const (
	// Good marks khat <= 0.5: the elpd contribution is reliable.
	Good Band = iota
	// Ok marks khat in (0.5, 0.7]: usable with reduced accuracy.
	Ok
	// Bad marks khat in (0.7, 1.0]: the observation distorts the
	// posterior enough that its estimate cannot be trusted.
	Bad
	// VeryBad marks khat above 1.0 (or not estimable): the importance
	// weights have infinite variance.
	VeryBad
)

var bandNames = map[Band]string{
	Good:    "good",
	Ok:      "ok",
	Bad:     "bad",
	VeryBad: "verybad",
}

// String returns the canonical name of the band.
func (b Band) String() string {
	if name, ok := bandNames[b]; ok {
		return name
	}

	return fmt.Sprintf("band(%d)", int(b))
}

// BandFor classifies a khat value. NaN classifies as VeryBad.
func BandFor(k float64) Band {
	switch {
	case k <= GoodMax:
		return Good
	case k <= OkMax:
		return Ok
	case k <= BadMax:
		return Bad
	default:
		return VeryBad
	}
}

// Point is the leave-one-out diagnostic for a single observation.
type Point struct {
	// Index is the observation's position in the dataset.
	Index int
	// K is the Pareto shape fitted to that observation's importance
	// weights; +Inf when the tail was too short to fit.
	K float64
	// Band classifies K.
	Band Band
	// ELPD is the observation's contribution to the expected log
	// pointwise predictive density.
	ELPD float64
}

// Result is the PSIS-LOO analysis of one Bayesian fit.
type Result struct {
	Family      bayes.Family
	Fingerprint uint64
	Variant     dataset.Variant
	N           int
	TotalDraws  int

	// ELPD is the expected log pointwise predictive density, with its
	// standard error SE.
	ELPD float64
	SE   float64
	// PLoo is the effective number of parameters.
	PLoo float64

	// Points holds the per-observation diagnostics in dataset order.
	Points []Point
}

// Analyze runs PSIS-LOO cross-validation on a completed fit.
//
// For every observation it forms the leave-one-out importance weights from
// the fit's pointwise log likelihood, smooths the weight tail with a
// generalized Pareto fit, and records the Pareto shape khat alongside the
// observation's elpd contribution. High khat never fails the analysis; it
// is the finding.
func Analyze(fit *bayes.Fit) (*Result, error) {
	if fit == nil {
		return nil, fmt.Errorf("nil fit: %w", errs.ErrNoFits)
	}
	logLik := fit.LogLik()
	draws, n := logLik.Dims()
	if draws < 2 || n == 0 {
		return nil, fmt.Errorf("log-likelihood matrix %dx%d: %w", draws, n, errs.ErrNoFits)
	}

	tail := tailLength(draws)

	points := make([]Point, n)
	elpds := make([]float64, n)
	pLoo := 0.0

	col := make([]float64, draws)
	lw := make([]float64, draws)
	sum := make([]float64, draws)
	for i := range n {
		mat.Col(col, i, logLik)

		// Leave-one-out importance ratios are the reciprocal likelihoods;
		// shift by the max so exponentiation is stable.
		for s := range draws {
			lw[s] = -col[s]
		}
		shift := floats.Max(lw)
		for s := range draws {
			lw[s] -= shift
		}

		khat := smoothTail(lw, tail)

		for s := range draws {
			sum[s] = lw[s] + col[s]
		}
		elpd := floats.LogSumExp(sum) - floats.LogSumExp(lw)
		lpd := floats.LogSumExp(col) - math.Log(float64(draws))

		points[i] = Point{Index: i, K: khat, Band: BandFor(khat), ELPD: elpd}
		elpds[i] = elpd
		pLoo += lpd - elpd
	}

	return &Result{
		Family:      fit.Family,
		Fingerprint: fit.Fingerprint,
		Variant:     fit.Variant,
		N:           n,
		TotalDraws:  draws,
		ELPD:        floats.Sum(elpds),
		SE:          math.Sqrt(float64(n) * stat.Variance(elpds, nil)),
		PLoo:        pLoo,
		Points:      points,
	}, nil
}

// MaxK returns the largest khat and its observation index.
func (r *Result) MaxK() (k float64, index int) {
	k = math.Inf(-1)
	for _, p := range r.Points {
		if p.K > k {
			k = p.K
			index = p.Index
		}
	}

	return k, index
}

// Counts tallies the observations per band.
func (r *Result) Counts() map[Band]int {
	counts := make(map[Band]int, 4)
	for _, p := range r.Points {
		counts[p.Band]++
	}

	return counts
}

// Flagged returns the observations whose khat exceeds OkMax, in dataset
// order. These are the points the model cannot predict without them.
func (r *Result) Flagged() []Point {
	var flagged []Point
	for _, p := range r.Points {
		if p.K > OkMax {
			flagged = append(flagged, p)
		}
	}

	return flagged
}

// String returns a one-line summary of the analysis.
func (r *Result) String() string {
	k, _ := r.MaxK()

	return fmt.Sprintf("LOO{family: %s, variant: %s, elpd: %.2f±%.2f, p_loo: %.2f, max khat: %.2f}",
		r.Family, r.Variant, r.ELPD, r.SE, r.PLoo, k)
}

// tailLength is the number of weights treated as the tail, following the
// PSIS recommendation ceil(min(0.2 S, 3 sqrt(S))).
func tailLength(draws int) int {
	s := float64(draws)

	return int(math.Ceil(math.Min(0.2*s, 3*math.Sqrt(s))))
}

// smoothTail fits a generalized Pareto distribution to the largest scaled
// log weights, replaces them with the fitted quantiles in place, and
// returns the shape estimate. Tails too short to fit are left unsmoothed
// with khat = +Inf.
func smoothTail(lw []float64, tail int) float64 {
	draws := len(lw)
	if tail < minTailLength {
		return math.Inf(1)
	}

	order := make([]int, draws)
	for s := range order {
		order[s] = s
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(lw[a], lw[b])
	})

	cut := math.Exp(lw[order[draws-tail-1]])
	exceed := make([]float64, tail)
	for j := range tail {
		exceed[j] = math.Exp(lw[order[draws-tail+j]]) - cut
	}
	if exceed[tail-1] <= 0 {
		// Every tail weight ties the cutoff; nothing to fit.
		return math.Inf(1)
	}

	g := fitGPD(exceed)
	if math.IsNaN(g.k) || math.IsInf(g.k, 1) {
		return math.Inf(1)
	}

	// Replace the tail with order statistics of the fitted distribution,
	// capped at the raw maximum.
	maxRaw := math.Exp(lw[order[draws-1]])
	for j := range tail {
		p := (float64(j) + 0.5) / float64(tail)
		q := cut + g.quantile(p)
		if q > maxRaw {
			q = maxRaw
		}
		lw[order[draws-tail+j]] = math.Log(q)
	}

	return g.k
}
