package bayes

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/tailfit/dataset"
)

// Diagnostic thresholds used by Fit.Warnings.
const (
	// rHatWarnLimit flags chains whose split R-hat suggests poor mixing.
	rHatWarnLimit = 1.05
	// essWarnLimit flags parameters with too few effective draws.
	essWarnLimit = 100.0
	// Acceptance rates outside this range indicate poorly tuned proposals.
	acceptWarnLow  = 0.10
	acceptWarnHigh = 0.60
)

// ParamSummary describes the marginal posterior of one parameter.
type ParamSummary struct {
	Name string
	Mean float64
	SD   float64
	// Lower and Upper bound the central 95% credible interval.
	Lower float64
	Upper float64
	// RHat is the split-chain potential scale reduction factor. Values
	// near 1 indicate the chains agree; NaN when too few draws.
	RHat float64
	// ESS estimates the number of effectively independent draws.
	ESS float64
}

// Fit is a completed Bayesian regression fit: posterior draws in natural
// space, per-parameter summaries, sampler diagnostics, and the pointwise
// log likelihood needed for leave-one-out cross-validation.
type Fit struct {
	Family  Family
	Priors  Priors
	FixedNu float64
	Seed    uint64
	Chains  int
	// DrawsPerChain is the number of kept draws in each chain.
	DrawsPerChain int

	// Params holds one summary per parameter, in ParamNames order.
	Params []ParamSummary

	// AcceptRate is the Metropolis acceptance rate estimated from
	// duplicate consecutive draws.
	AcceptRate float64
	// Warnings lists sampler health findings. An empty slice means the
	// run looked healthy; warnings never abort a fit.
	Warnings []string

	// N, Variant and Fingerprint identify the fitted dataset.
	N           int
	Variant     dataset.Variant
	Fingerprint uint64

	draws  *mat.Dense
	logLik *mat.Dense
}

// newFit transforms raw draws from the sampling parameterization into
// natural space and summarizes them.
func newFit(ds *dataset.Dataset, family Family, cfg *fitConfig, raw *mat.Dense) *Fit {
	total := cfg.chains * cfg.draws
	dim := family.NumParams()

	natural := mat.NewDense(total, dim, nil)
	for s := range total {
		natural.Set(s, 0, raw.At(s, 0))
		natural.Set(s, 1, raw.At(s, 1))
		natural.Set(s, 2, math.Exp(raw.At(s, 2)))
		if dim == 4 {
			natural.Set(s, 3, 1+math.Exp(raw.At(s, 3)))
		}
	}

	xs, ys := ds.X(), ds.Y()
	logLik := mat.NewDense(total, len(xs), nil)
	for s := range total {
		intercept := natural.At(s, 0)
		slope := natural.At(s, 1)
		sigma := natural.At(s, 2)
		nu := cfg.fixedNu
		if dim == 4 {
			nu = natural.At(s, 3)
		}
		for i := range xs {
			logLik.Set(s, i, pointLogLik(family, intercept, slope, sigma, nu, xs[i], ys[i]))
		}
	}

	names := family.ParamNames()
	params := make([]ParamSummary, dim)
	col := make([]float64, total)
	for j := range dim {
		mat.Col(col, j, natural)
		mean, sd := stat.MeanStdDev(col, nil)

		sorted := slices.Clone(col)
		slices.Sort(sorted)

		params[j] = ParamSummary{
			Name:  names[j],
			Mean:  mean,
			SD:    sd,
			Lower: stat.Quantile(0.025, stat.Empirical, sorted, nil),
			Upper: stat.Quantile(0.975, stat.Empirical, sorted, nil),
			RHat:  splitRHat(col, cfg.chains),
			ESS:   effectiveSampleSize(col, cfg.chains),
		}
	}

	fit := &Fit{
		Family:        family,
		Priors:        *targetPriors(ds, cfg),
		FixedNu:       cfg.fixedNu,
		Seed:          cfg.seed,
		Chains:        cfg.chains,
		DrawsPerChain: cfg.draws,
		Params:        params,
		AcceptRate:    estimateAcceptRate(raw, cfg.chains, cfg.thin),
		N:             ds.Len(),
		Variant:       ds.Variant(),
		Fingerprint:   ds.Fingerprint(),
		draws:         natural,
		logLik:        logLik,
	}
	fit.Warnings = samplerWarnings(params, fit.AcceptRate)

	return fit
}

func targetPriors(ds *dataset.Dataset, cfg *fitConfig) *Priors {
	if cfg.priors != nil {
		return cfg.priors
	}
	p := DefaultPriors(ds)

	return &p
}

// TotalDraws returns the number of kept draws across all chains.
func (f *Fit) TotalDraws() int { return f.Chains * f.DrawsPerChain }

// Draws returns the kept posterior draws in natural parameter space, one
// row per draw with columns in Params order. The matrix is shared, not
// copied; treat it as read-only.
func (f *Fit) Draws() *mat.Dense { return f.draws }

// LogLik returns the pointwise log-likelihood matrix with one row per
// draw and one column per observation. Shared, not copied.
func (f *Fit) LogLik() *mat.Dense { return f.logLik }

// Param returns the summary for the named parameter.
func (f *Fit) Param(name string) (ParamSummary, bool) {
	for _, p := range f.Params {
		if p.Name == name {
			return p, true
		}
	}

	return ParamSummary{}, false
}

// Intercept returns the intercept summary.
func (f *Fit) Intercept() ParamSummary { return f.Params[0] }

// Slope returns the slope summary.
func (f *Fit) Slope() ParamSummary { return f.Params[1] }

// String returns a one-line summary of the fit.
func (f *Fit) String() string {
	slope := f.Slope()

	return fmt.Sprintf("BayesFit{family: %s, variant: %s, n: %d, draws: %d, slope: %.4f [%.4f, %.4f]}",
		f.Family, f.Variant, f.N, f.TotalDraws(), slope.Mean, slope.Lower, slope.Upper)
}

// splitRHat computes the split-chain potential scale reduction factor for
// one parameter column laid out chain-major. Each chain is split in half
// so that within-chain drift also inflates the statistic.
func splitRHat(col []float64, chains int) float64 {
	perChain := len(col) / chains
	half := perChain / 2
	if half < 2 {
		return math.NaN()
	}

	seqs := make([][]float64, 0, 2*chains)
	for c := range chains {
		start := c * perChain
		seqs = append(seqs, col[start:start+half], col[start+half:start+2*half])
	}

	length := float64(half)
	means := make([]float64, len(seqs))
	vars := make([]float64, len(seqs))
	for i, seq := range seqs {
		means[i], vars[i] = stat.MeanVariance(seq, nil)
	}

	within := stat.Mean(vars, nil)
	if within == 0 {
		return math.NaN()
	}
	between := length * stat.Variance(means, nil)
	varPlus := (length-1)/length*within + between/length

	return math.Sqrt(varPlus / within)
}

// effectiveSampleSize estimates the effective number of independent draws
// from chain autocorrelations, truncated with Geyer's initial positive
// sequence rule (sum lag pairs while their sum stays positive).
func effectiveSampleSize(col []float64, chains int) float64 {
	perChain := len(col) / chains
	if perChain < 4 {
		return math.NaN()
	}
	maxLag := perChain / 2

	// Average per-chain autocorrelations at each lag.
	rho := make([]float64, maxLag)
	for c := range chains {
		seq := col[c*perChain : (c+1)*perChain]
		mean := stat.Mean(seq, nil)
		var acov0 float64
		for _, v := range seq {
			acov0 += (v - mean) * (v - mean)
		}
		if acov0 == 0 {
			return math.NaN()
		}
		for lag := 1; lag < maxLag; lag++ {
			var acov float64
			for i := 0; i+lag < perChain; i++ {
				acov += (seq[i] - mean) * (seq[i+lag] - mean)
			}
			rho[lag] += acov / acov0
		}
	}
	for lag := 1; lag < maxLag; lag++ {
		rho[lag] /= float64(chains)
	}

	pairSum := 0.0
	for lag := 1; lag+1 < maxLag; lag += 2 {
		pair := rho[lag] + rho[lag+1]
		if pair < 0 {
			break
		}
		pairSum += pair
	}

	ess := float64(len(col)) / (1 + 2*pairSum)
	if ess > float64(len(col)) {
		ess = float64(len(col))
	}

	return ess
}

// estimateAcceptRate infers the Metropolis acceptance rate from the kept
// draws. With thinning t, a kept draw equals its predecessor only when
// all t proposals in between were rejected, so the duplicate fraction d
// satisfies d = (1-a)^t.
func estimateAcceptRate(raw *mat.Dense, chains, thin int) float64 {
	rows, dim := raw.Dims()
	perChain := rows / chains
	if perChain < 2 {
		return math.NaN()
	}

	dups, total := 0, 0
	for c := range chains {
		for s := 1; s < perChain; s++ {
			r := c*perChain + s
			same := true
			for j := range dim {
				if raw.At(r, j) != raw.At(r-1, j) {
					same = false
					break
				}
			}
			if same {
				dups++
			}
			total++
		}
	}

	dupFrac := float64(dups) / float64(total)

	return 1 - math.Pow(dupFrac, 1/float64(thin))
}

func samplerWarnings(params []ParamSummary, accept float64) []string {
	var warnings []string
	for _, p := range params {
		if !math.IsNaN(p.RHat) && p.RHat > rHatWarnLimit {
			warnings = append(warnings, fmt.Sprintf("split R-hat %.3f for %s exceeds %.2f, chains may not have mixed", p.RHat, p.Name, rHatWarnLimit))
		}
		if !math.IsNaN(p.ESS) && p.ESS < essWarnLimit {
			warnings = append(warnings, fmt.Sprintf("effective sample size %.0f for %s is below %.0f", p.ESS, p.Name, essWarnLimit))
		}
	}
	if !math.IsNaN(accept) && (accept < acceptWarnLow || accept > acceptWarnHigh) {
		warnings = append(warnings, fmt.Sprintf("estimated acceptance rate %.2f outside [%.2f, %.2f], consider adjusting proposal scales", accept, acceptWarnLow, acceptWarnHigh))
	}

	return warnings
}
