package bayes

import (
	"fmt"

	"github.com/arloliu/tailfit/errs"
	"github.com/arloliu/tailfit/internal/options"
)

// Default sampler settings. Four chains of 1000 kept draws, thinned by 5
// after 1000 burn-in iterations, give stable summaries for datasets of the
// size this library targets.
const (
	DefaultChains  = 4
	DefaultBurnIn  = 1000
	DefaultDraws   = 1000
	DefaultThin    = 5
	DefaultFixedNu = 4.0

	// DefaultSeed seeds the per-chain random sources.
	DefaultSeed uint64 = 42
)

type fitConfig struct {
	chains  int
	burnIn  int
	draws   int
	thin    int
	seed    uint64
	fixedNu float64
	priors  *Priors
	scales  []float64
}

// FitOption configures FitModel.
type FitOption = options.Option[*fitConfig]

// WithChains sets the number of independent chains. Must be at least 1.
func WithChains(n int) FitOption {
	return options.New(func(cfg *fitConfig) error {
		if n < 1 {
			return fmt.Errorf("chains=%d: %w", n, errs.ErrInvalidSamplerConfig)
		}
		cfg.chains = n

		return nil
	})
}

// WithBurnIn sets the number of discarded warm-up iterations per chain.
func WithBurnIn(n int) FitOption {
	return options.New(func(cfg *fitConfig) error {
		if n < 0 {
			return fmt.Errorf("burn-in=%d: %w", n, errs.ErrInvalidSamplerConfig)
		}
		cfg.burnIn = n

		return nil
	})
}

// WithDraws sets the number of kept draws per chain. Must be at least 2 so
// that posterior summaries are defined.
func WithDraws(n int) FitOption {
	return options.New(func(cfg *fitConfig) error {
		if n < 2 {
			return fmt.Errorf("draws=%d: %w", n, errs.ErrInvalidSamplerConfig)
		}
		cfg.draws = n

		return nil
	})
}

// WithThin keeps every n-th post-burn-in iteration. Must be at least 1.
func WithThin(n int) FitOption {
	return options.New(func(cfg *fitConfig) error {
		if n < 1 {
			return fmt.Errorf("thin=%d: %w", n, errs.ErrInvalidSamplerConfig)
		}
		cfg.thin = n

		return nil
	})
}

// WithSeed sets the base seed for the sampler. Each chain derives its own
// stream from it, so a fixed seed reproduces the draws exactly.
func WithSeed(seed uint64) FitOption {
	return options.NoError(func(cfg *fitConfig) {
		cfg.seed = seed
	})
}

// WithFixedNu sets the degrees of freedom used by the StudentTFixed
// family. Must exceed 1 so the error distribution has a mean.
func WithFixedNu(nu float64) FitOption {
	return options.New(func(cfg *fitConfig) error {
		if !(nu > 1) {
			return fmt.Errorf("fixed nu=%v must exceed 1: %w", nu, errs.ErrInvalidSamplerConfig)
		}
		cfg.fixedNu = nu

		return nil
	})
}

// WithPriors overrides the data-scaled default priors.
func WithPriors(p Priors) FitOption {
	return options.NoError(func(cfg *fitConfig) {
		cfg.priors = &p
	})
}

// WithProposalScales overrides the derived random-walk step sizes. One
// positive value per sampled parameter, in ParamNames order.
func WithProposalScales(scales ...float64) FitOption {
	return options.New(func(cfg *fitConfig) error {
		for _, s := range scales {
			if !(s > 0) {
				return fmt.Errorf("proposal scale %v must be positive: %w", s, errs.ErrInvalidSamplerConfig)
			}
		}
		cfg.scales = scales

		return nil
	})
}
