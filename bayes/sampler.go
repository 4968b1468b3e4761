package bayes

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/samplemv"

	"github.com/arloliu/tailfit/dataset"
	"github.com/arloliu/tailfit/errs"
	"github.com/arloliu/tailfit/internal/options"
	"github.com/arloliu/tailfit/ols"
)

// FitModel samples the posterior of a linear regression on ds under the
// given likelihood family.
//
// Chains are initialized at the least-squares estimates and run
// sequentially with random-walk Metropolis. Draws are mapped back to
// natural space (sigma and nu are sampled on the log scale) and summarized
// per parameter. The same dataset, family, options and seed always produce
// the same draws.
//
// Parameters:
//   - ds: dataset to fit; needs at least two distinct x values
//   - family: likelihood family for the error distribution
//   - opts: optional sampler configuration (chains, burn-in, draws,
//     thinning, seed, priors, fixed nu, proposal scales)
//
// Returns:
//   - *Fit: posterior draws, parameter summaries and sampler diagnostics
//   - error: errs.ErrUnknownFamily for an invalid family,
//     errs.ErrInvalidSamplerConfig or errs.ErrInvalidPrior for bad
//     configuration, or the least-squares error for degenerate data
//
// Example:
//
//	ds, _ := dataset.Simulate(dataset.WithSeed(7))
//	fit, err := bayes.FitModel(ds, bayes.StudentT, bayes.WithSeed(7))
//	if err != nil {
//	    return err
//	}
//	slope := fit.Slope()
//	fmt.Printf("slope %.3f [%.3f, %.3f]\n", slope.Mean, slope.Lower, slope.Upper)
func FitModel(ds *dataset.Dataset, family Family, opts ...FitOption) (*Fit, error) {
	if !family.valid() {
		return nil, fmt.Errorf("family(%d): %w", int(family), errs.ErrUnknownFamily)
	}

	cfg := &fitConfig{
		chains:  DefaultChains,
		burnIn:  DefaultBurnIn,
		draws:   DefaultDraws,
		thin:    DefaultThin,
		seed:    DefaultSeed,
		fixedNu: DefaultFixedNu,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	// The least-squares fit validates the dataset and anchors both the
	// chain initialization and the proposal step sizes.
	base, err := ols.Fit(ds)
	if err != nil {
		return nil, fmt.Errorf("initial least-squares fit: %w", err)
	}

	priors := DefaultPriors(ds)
	if cfg.priors != nil {
		priors = *cfg.priors
	}
	if err := priors.validate(); err != nil {
		return nil, err
	}

	dim := family.NumParams()
	scales, err := proposalScales(cfg, base, dim, ds.Len())
	if err != nil {
		return nil, err
	}

	target := &posterior{
		family:  family,
		priors:  priors,
		fixedNu: cfg.fixedNu,
		xs:      ds.X(),
		ys:      ds.Y(),
	}

	initial := make([]float64, dim)
	initial[0] = base.Intercept
	initial[1] = base.Slope
	sigma0 := base.Sigma
	if sigma0 <= 0 {
		sigma0 = 1e-6
	}
	initial[2] = math.Log(sigma0)
	if dim == 4 {
		// Start nu at 10, between the heavy-tailed and near-normal regimes.
		initial[3] = math.Log(10 - 1)
	}

	cov := mat.NewSymDense(dim, nil)
	for i, s := range scales {
		cov.SetSym(i, i, s*s)
	}

	raw := mat.NewDense(cfg.chains*cfg.draws, dim, nil)
	for c := range cfg.chains {
		// One PCG stream per chain, all derived from the base seed.
		src := rand.NewPCG(cfg.seed, uint64(c)+1)
		proposal, ok := samplemv.NewProposalNormal(cov, src)
		if !ok {
			return nil, fmt.Errorf("proposal covariance not positive definite: %w", errs.ErrInvalidSamplerConfig)
		}

		sampler := samplemv.MetropolisHastingser{
			Initial:  initial,
			Target:   target,
			Proposal: proposal,
			Src:      src,
			BurnIn:   cfg.burnIn,
			Rate:     cfg.thin,
		}
		batch := raw.Slice(c*cfg.draws, (c+1)*cfg.draws, 0, dim).(*mat.Dense)
		sampler.Sample(batch)
	}

	return newFit(ds, family, cfg, raw), nil
}

// proposalScales derives the random-walk step size per parameter.
// Coefficient steps follow the least-squares standard errors, the
// log-sigma step follows its asymptotic standard deviation
// 1/sqrt(2(n-2)), and the log(nu-1) step is fixed wide. All are scaled by
// 2.38/sqrt(dim), the usual random-walk tuning factor.
func proposalScales(cfg *fitConfig, base *ols.Result, dim, n int) ([]float64, error) {
	if cfg.scales != nil {
		if len(cfg.scales) != dim {
			return nil, fmt.Errorf("%d proposal scales for %d parameters: %w", len(cfg.scales), dim, errs.ErrInvalidSamplerConfig)
		}

		return slices.Clone(cfg.scales), nil
	}

	seIntercept := base.InterceptSE
	if seIntercept <= 0 {
		seIntercept = 0.01
	}
	seSlope := base.SlopeSE
	if seSlope <= 0 {
		seSlope = 0.01
	}
	logSigmaSD := 0.5
	if n > 2 {
		logSigmaSD = 1 / math.Sqrt(2*float64(n-2))
	}

	tune := 2.38 / math.Sqrt(float64(dim))
	scales := []float64{tune * seIntercept, tune * seSlope, tune * logSigmaSD}
	if dim == 4 {
		scales = append(scales, tune*0.8)
	}

	return scales, nil
}
