// Package bayes fits Bayesian linear regressions by posterior sampling
// under interchangeable likelihood families.
//
// # Overview
//
// The model is y_i = intercept + slope·x_i + e_i with three likelihood
// choices for the error distribution:
//
//   - Gaussian: normal errors, the classical fixed-tail model
//   - StudentT: Student's t errors with the degrees-of-freedom nu estimated
//     under a Gamma(2, 0.1) prior on nu-1
//   - StudentTFixed: Student's t errors with nu fixed to a constant
//     (default 4)
//
// Heavier tails let extreme observations be explained by the error
// distribution instead of dragging the regression line, which is the whole
// point of the comparison this library supports.
//
// # Sampling
//
// Posteriors are explored with random-walk Metropolis
// (gonum's samplemv.MetropolisHastingser) over the unconstrained
// parameterization (intercept, slope, log sigma[, log(nu-1)]). Proposal
// step sizes derive from a least-squares pre-fit. Chains run sequentially;
// a fixed seed makes the draws reproducible:
//
//	fit, err := bayes.FitModel(ds, bayes.StudentT,
//	    bayes.WithSeed(42),
//	    bayes.WithChains(4),
//	)
//
// Each parameter is summarized by its posterior mean, standard deviation
// and central 95% credible interval. Sampler health (split R-hat,
// effective sample size, acceptance rate) is reported through Fit.Warnings
// rather than errors: non-convergence is a diagnostic, not a failure.
//
// The fit keeps its pointwise log-likelihood matrix, which the loo package
// consumes for leave-one-out cross-validation.
package bayes
