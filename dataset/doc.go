// Package dataset simulates correlated bivariate samples and derives the
// outlier-injected variants used to stress regression fits.
//
// # Overview
//
// A Dataset is an immutable, ordered collection of (x, y) observations
// stored as float64 columns. Simulate draws one from a bivariate normal
// distribution with unit variances and a configurable correlation, sorts it
// by x ascending, and tags it Clean:
//
//	ds, err := dataset.Simulate(
//	    dataset.WithSampleSize(100),
//	    dataset.WithCorrelation(0.9),
//	    dataset.WithSeed(42),
//	)
//
// Derived variants never mutate their source:
//
//	outlier, err := ds.WithOutliers(dataset.DefaultOutlierYs...) // y of the two smallest-x rows replaced
//	trimmed, err := outlier.Drop(0, 1)                           // same rows removed again
//
// # Determinism
//
// Simulation is driven by a PCG source from math/rand/v2 seeded with the
// configured seed, so identical options produce bit-identical datasets.
// Every dataset carries an xxHash64 fingerprint of its columns, used by the
// fitting and reporting packages as a join identifier.
package dataset
