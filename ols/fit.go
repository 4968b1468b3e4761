package ols

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/tailfit/dataset"
	"github.com/arloliu/tailfit/errs"
)

// Result holds an ordinary least squares fit of y = intercept + slope*x
// together with its per-observation influence diagnostics.
type Result struct {
	Intercept   float64
	Slope       float64
	InterceptSE float64
	SlopeSE     float64

	// Sigma is the residual standard error, sqrt(RSS/(n-2)).
	Sigma float64
	// RSquared is the coefficient of determination.
	RSquared float64

	// Residuals, Leverage and CooksD each hold one entry per observation of
	// the source dataset, in observation order.
	Residuals []float64
	Leverage  []float64
	CooksD    []float64

	// N, Variant and Fingerprint identify the source dataset for joining
	// with other fits.
	N           int
	Variant     dataset.Variant
	Fingerprint uint64

	// Design geometry retained for confidence bands.
	xMean float64
	sxx   float64
}

// Fit performs ordinary least squares on the dataset.
//
// Parameters:
//   - ds: the dataset to fit; must have at least 2 observations with at
//     least 2 distinct x values
//
// Returns the fitted Result, or errs.ErrTooFewObservations /
// errs.ErrDegenerateDesign on degenerate input. There are no other failure
// modes.
//
// Cook's distance for observation i is
//
//	D_i = e_i² / (p·s²) · h_i / (1-h_i)²
//
// with p = 2 fitted coefficients, s² the residual variance and
// h_i = 1/n + (x_i-x̄)²/Sxx the leverage. For a perfect fit (s² = 0) all
// distances are reported as zero.
func Fit(ds *dataset.Dataset) (*Result, error) {
	if ds == nil {
		return nil, fmt.Errorf("nil dataset: %w", errs.ErrTooFewObservations)
	}
	n := ds.Len()
	if n < 2 {
		return nil, fmt.Errorf("n=%d: %w", n, errs.ErrTooFewObservations)
	}

	xs := ds.X()
	ys := ds.Y()

	meanX := stat.Mean(xs, nil)
	sxx := 0.0
	for _, x := range xs {
		dx := x - meanX
		sxx += dx * dx
	}
	if sxx == 0 {
		return nil, fmt.Errorf("all %d x values equal: %w", n, errs.ErrDegenerateDesign)
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	residuals := make([]float64, n)
	rss := 0.0
	for i := range xs {
		residuals[i] = ys[i] - intercept - slope*xs[i]
		rss += residuals[i] * residuals[i]
	}

	meanY := stat.Mean(ys, nil)
	tss := 0.0
	for _, y := range ys {
		dy := y - meanY
		tss += dy * dy
	}
	rsq := 0.0
	if tss > 0 {
		rsq = 1 - rss/tss
	}

	s2 := 0.0
	if dof := n - 2; dof > 0 {
		s2 = rss / float64(dof)
	}
	sigma := math.Sqrt(s2)

	seSlope := sigma / math.Sqrt(sxx)
	seIntercept := sigma * math.Sqrt(1/float64(n)+meanX*meanX/sxx)

	leverage := make([]float64, n)
	cooks := make([]float64, n)
	const p = 2.0
	for i := range xs {
		dx := xs[i] - meanX
		leverage[i] = 1/float64(n) + dx*dx/sxx
		if s2 == 0 {
			continue
		}
		den := 1 - leverage[i]
		if den <= 0 {
			// Leverage of exactly 1: the point determines the fit by itself.
			cooks[i] = math.Inf(1)
			continue
		}
		cooks[i] = residuals[i] * residuals[i] / (p * s2) * leverage[i] / (den * den)
	}

	return &Result{
		Intercept:   intercept,
		Slope:       slope,
		InterceptSE: seIntercept,
		SlopeSE:     seSlope,
		Sigma:       sigma,
		RSquared:    rsq,
		Residuals:   residuals,
		Leverage:    leverage,
		CooksD:      cooks,
		N:           n,
		Variant:     ds.Variant(),
		Fingerprint: ds.Fingerprint(),
		xMean:       meanX,
		sxx:         sxx,
	}, nil
}

// Predict returns the fitted value intercept + slope*x.
func (r *Result) Predict(x float64) float64 {
	return r.Intercept + r.Slope*x
}

// MeanSE returns the standard error of the fitted mean at x, the basis of
// pointwise confidence bands around the regression line.
func (r *Result) MeanSE(x float64) float64 {
	if r.sxx == 0 || r.N == 0 {
		return 0
	}
	dx := x - r.xMean

	return r.Sigma * math.Sqrt(1/float64(r.N)+dx*dx/r.sxx)
}

// MaxCook returns the index and value of the largest Cook's distance.
func (r *Result) MaxCook() (int, float64) {
	idx := floats.MaxIdx(r.CooksD)
	return idx, r.CooksD[idx]
}

// String returns a one-line summary of the fit.
func (r *Result) String() string {
	return fmt.Sprintf("OLS{%s, n: %d, intercept: %.4f (SE %.4f), slope: %.4f (SE %.4f), sigma: %.4f, R²: %.4f}",
		r.Variant, r.N, r.Intercept, r.InterceptSE, r.Slope, r.SlopeSE, r.Sigma, r.RSquared)
}
