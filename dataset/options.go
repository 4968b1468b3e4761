package dataset

import (
	"fmt"
	"math"

	"github.com/arloliu/tailfit/errs"
	"github.com/arloliu/tailfit/internal/options"
)

// Option configures a Simulate call.
type Option = options.Option[*simConfig]

// WithSampleSize sets the number of observations to draw. The minimum is 3
// so that downstream fits have residual degrees of freedom.
func WithSampleSize(n int) Option {
	return options.New(func(cfg *simConfig) error {
		if n < 3 {
			return fmt.Errorf("n=%d: %w", n, errs.ErrInvalidSampleSize)
		}
		cfg.n = n

		return nil
	})
}

// WithCorrelation sets the off-diagonal correlation of the bivariate draw.
// Must lie strictly inside (-1, 1).
func WithCorrelation(rho float64) Option {
	return options.New(func(cfg *simConfig) error {
		if math.IsNaN(rho) || rho <= -1 || rho >= 1 {
			return fmt.Errorf("rho=%v: %w", rho, errs.ErrInvalidCorrelation)
		}
		cfg.rho = rho

		return nil
	})
}

// WithMean sets the mean vector of the bivariate draw (default 0, 0).
func WithMean(meanX, meanY float64) Option {
	return options.NoError(func(cfg *simConfig) {
		cfg.meanX = meanX
		cfg.meanY = meanY
	})
}

// WithSeed sets the pseudo-random seed.
func WithSeed(seed uint64) Option {
	return options.NoError(func(cfg *simConfig) {
		cfg.seed = seed
	})
}
