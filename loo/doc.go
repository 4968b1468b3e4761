// Package loo estimates out-of-sample predictive accuracy of Bayesian fits
// by Pareto-smoothed importance sampling leave-one-out cross-validation
// (PSIS-LOO, Vehtari, Gelman and Gabry 2017).
//
// # Overview
//
// For each observation the posterior draws are reweighted as if that
// observation had been left out. The importance weights can be badly
// heavy-tailed exactly where a model struggles, so the largest weights are
// replaced by quantiles of a generalized Pareto distribution fitted to
// them. The fitted shape khat is itself the diagnostic: it measures how
// much a single observation distorts the posterior.
//
//	band     khat          meaning
//	good     (-inf, 0.5]   estimate reliable
//	ok       (0.5, 0.7]    usable, reduced accuracy
//	bad      (0.7, 1.0]    estimate unreliable, observation influential
//	verybad  (1.0, inf)    estimate unusable
//
// A Gaussian fit to data with planted outliers flags the planted rows as
// bad while a Student-t fit on the same data typically keeps every
// observation in the reliable bands.
//
// # Usage
//
//	fit, _ := bayes.FitModel(ds, bayes.Gaussian)
//	res, err := loo.Analyze(fit)
//	if err != nil {
//	    return err
//	}
//	for _, p := range res.Flagged() {
//	    log.Printf("obs %d: khat %.2f (%s)", p.Index, p.K, p.Band)
//	}
//
// Results for different models of the same dataset are ranked with
// Compare, which reports elpd differences with paired standard errors.
package loo
