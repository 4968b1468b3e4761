// Package tailfit compares robust and non-robust regression models on
// simulated data with planted outliers.
//
// The pipeline simulates a bivariate normal sample, injects outliers into
// a copy, fits a least-squares baseline and a family of Bayesian linear
// models (Gaussian and Student-t likelihoods), cross-validates every fit,
// and joins the results into a report that shows how each likelihood
// handles the contamination.
//
// # Core Features
//
//   - Seeded simulation of clean and outlier-contaminated datasets
//   - Least-squares fitting with influence diagnostics (Cook's distance)
//   - Bayesian linear models via random-walk Metropolis sampling
//   - Pareto-smoothed importance-sampling cross-validation (PSIS-LOO)
//   - Model ranking, text reports, plots, and compressed artifacts
//
// # Basic Usage
//
// Running the full comparison with defaults:
//
//	import "github.com/arloliu/tailfit"
//
//	res, err := tailfit.RunComparison()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(res.Comparison)
//
// Building a custom flow from the pieces:
//
//	clean, outlier, _ := tailfit.SimulatePair(dataset.WithSeed(7))
//	lsq, fits, _ := tailfit.FitAll(outlier, tailfit.DefaultFamilies())
//	results, _ := tailfit.AnalyzeAll(fits)
//	_ = clean
//	_ = lsq
//	_ = results
//
// # Package Structure
//
// This package provides top-level wrappers around the pipeline packages,
// covering the common comparison flow. For fine-grained control use the
// packages directly:
//
//   - dataset: simulation, outlier injection, row manipulation
//   - ols: least-squares fitting and influence diagnostics
//   - bayes: Bayesian model fitting and convergence diagnostics
//   - loo: cross-validation, reliability bands, model ranking
//   - report: label-keyed joining and text rendering
//   - chart: forest, influence, and fitted-curve plots
//   - archive: compressed artifact persistence
package tailfit

import (
	"fmt"

	"github.com/arloliu/tailfit/bayes"
	"github.com/arloliu/tailfit/dataset"
	"github.com/arloliu/tailfit/errs"
	"github.com/arloliu/tailfit/internal/options"
	"github.com/arloliu/tailfit/loo"
	"github.com/arloliu/tailfit/ols"
	"github.com/arloliu/tailfit/report"
)

// DefaultFamilies returns the likelihood families RunComparison fits when
// none are configured: Gaussian, Student-t with estimated degrees of
// freedom, and Student-t with fixed degrees of freedom.
func DefaultFamilies() []bayes.Family {
	return []bayes.Family{bayes.Gaussian, bayes.StudentT, bayes.StudentTFixed}
}

type runConfig struct {
	seed        uint64
	families    []bayes.Family
	outlierYs   []float64
	datasetOpts []dataset.Option
	fitOpts     []bayes.FitOption
}

// RunOption configures RunComparison.
type RunOption = options.Option[*runConfig]

// WithSeed sets the seed shared by simulation and sampling. The default
// is dataset.DefaultSeed.
func WithSeed(seed uint64) RunOption {
	return options.NoError(func(cfg *runConfig) {
		cfg.seed = seed
	})
}

// WithFamilies sets the likelihood families to fit, in report order.
func WithFamilies(families ...bayes.Family) RunOption {
	return options.New(func(cfg *runConfig) error {
		if len(families) == 0 {
			return fmt.Errorf("no families: %w", errs.ErrNoFits)
		}
		cfg.families = families

		return nil
	})
}

// WithOutlierValues sets the response values planted into the outlier
// dataset, replacing dataset.DefaultOutlierYs.
func WithOutlierValues(ys ...float64) RunOption {
	return options.New(func(cfg *runConfig) error {
		if len(ys) == 0 {
			return fmt.Errorf("no outlier values: %w", errs.ErrInvalidOutlierCount)
		}
		cfg.outlierYs = ys

		return nil
	})
}

// WithDatasetOptions forwards options to the dataset simulation.
func WithDatasetOptions(opts ...dataset.Option) RunOption {
	return options.NoError(func(cfg *runConfig) {
		cfg.datasetOpts = append(cfg.datasetOpts, opts...)
	})
}

// WithFitOptions forwards options to every Bayesian fit.
func WithFitOptions(opts ...bayes.FitOption) RunOption {
	return options.NoError(func(cfg *runConfig) {
		cfg.fitOpts = append(cfg.fitOpts, opts...)
	})
}

// SimulatePair generates a clean dataset and its outlier-contaminated
// copy. Options control the clean simulation; the contaminated copy
// plants dataset.DefaultOutlierYs into the smallest-x rows.
func SimulatePair(opts ...dataset.Option) (clean, outlier *dataset.Dataset, err error) {
	clean, err = dataset.Simulate(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("simulate: %w", err)
	}

	outlier, err = clean.WithOutliers(dataset.DefaultOutlierYs...)
	if err != nil {
		return nil, nil, fmt.Errorf("inject outliers: %w", err)
	}

	return clean, outlier, nil
}

// FitAll fits the least-squares baseline and one Bayesian model per
// family on the dataset. The returned fits are index-aligned with
// families.
func FitAll(ds *dataset.Dataset, families []bayes.Family, opts ...bayes.FitOption) (*ols.Result, []*bayes.Fit, error) {
	if len(families) == 0 {
		return nil, nil, fmt.Errorf("no families: %w", errs.ErrNoFits)
	}

	lsq, err := ols.Fit(ds)
	if err != nil {
		return nil, nil, fmt.Errorf("least-squares fit: %w", err)
	}

	fits := make([]*bayes.Fit, len(families))
	for i, family := range families {
		fit, err := bayes.FitModel(ds, family, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("fit %s: %w", family, err)
		}
		fits[i] = fit
	}

	return lsq, fits, nil
}

// AnalyzeAll cross-validates each fit. The results are index-aligned
// with fits.
func AnalyzeAll(fits []*bayes.Fit) ([]*loo.Result, error) {
	if len(fits) == 0 {
		return nil, fmt.Errorf("no fits: %w", errs.ErrNoFits)
	}

	results := make([]*loo.Result, len(fits))
	for i, fit := range fits {
		res, err := loo.Analyze(fit)
		if err != nil {
			return nil, fmt.Errorf("cross-validate %s: %w", fit.Family, err)
		}
		results[i] = res
	}

	return results, nil
}

// Result bundles the artifacts of a comparison run.
type Result struct {
	// Clean is the uncontaminated dataset.
	Clean *dataset.Dataset

	// Outlier is the contaminated copy of Clean.
	Outlier *dataset.Dataset

	// Comparison joins every fit under "<model>-<variant>" labels, such
	// as "gaussian-clean" or "ols-outlier".
	Comparison *report.Comparison
}

// RunComparison executes the full pipeline: simulate the dataset pair,
// fit the least-squares baseline and every configured family on both
// datasets, cross-validate the Bayesian fits, and join everything into a
// comparison report.
//
// Parameters:
//   - opts: Optional configuration (seed, families, outlier values,
//     forwarded dataset and fit options)
//
// Returns:
//   - *Result: Datasets and the joined comparison.
//   - error: The first simulation, fitting, or joining error.
//
// The run is deterministic for a given configuration. Sampler
// non-convergence does not fail the run; it surfaces in the report's
// warnings section.
//
// Example:
//
//	res, err := tailfit.RunComparison(
//	    tailfit.WithSeed(7),
//	    tailfit.WithFamilies(bayes.Gaussian, bayes.StudentT),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(res.Comparison)
func RunComparison(opts ...RunOption) (*Result, error) {
	cfg := &runConfig{
		seed:      dataset.DefaultSeed,
		families:  DefaultFamilies(),
		outlierYs: dataset.DefaultOutlierYs,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	dsOpts := append([]dataset.Option{dataset.WithSeed(cfg.seed)}, cfg.datasetOpts...)
	clean, err := dataset.Simulate(dsOpts...)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	outlier, err := clean.WithOutliers(cfg.outlierYs...)
	if err != nil {
		return nil, fmt.Errorf("inject outliers: %w", err)
	}

	fitOpts := append([]bayes.FitOption{bayes.WithSeed(cfg.seed)}, cfg.fitOpts...)

	comparison := report.NewComparison()
	for _, ds := range []*dataset.Dataset{clean, outlier} {
		variant := ds.Variant()

		lsq, err := ols.Fit(ds)
		if err != nil {
			return nil, fmt.Errorf("least-squares fit on %s data: %w", variant, err)
		}
		if err := comparison.AddOLS(fmt.Sprintf("ols-%s", variant), lsq); err != nil {
			return nil, err
		}

		for _, family := range cfg.families {
			label := fmt.Sprintf("%s-%s", family, variant)

			fit, err := bayes.FitModel(ds, family, fitOpts...)
			if err != nil {
				return nil, fmt.Errorf("fit %s on %s data: %w", family, variant, err)
			}
			if err := comparison.AddBayes(label, fit); err != nil {
				return nil, err
			}

			res, err := loo.Analyze(fit)
			if err != nil {
				return nil, fmt.Errorf("cross-validate %s on %s data: %w", family, variant, err)
			}
			if err := comparison.AddLOO(label, res); err != nil {
				return nil, err
			}
		}
	}

	return &Result{Clean: clean, Outlier: outlier, Comparison: comparison}, nil
}
