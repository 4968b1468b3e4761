package ols

import (
	"errors"
	"math"
	"testing"

	"github.com/arloliu/tailfit/dataset"
	"github.com/arloliu/tailfit/errs"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func mustDataset(t *testing.T, xs, ys []float64) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(xs, ys, dataset.Clean)
	if err != nil {
		t.Fatalf("failed to build dataset: %v", err)
	}

	return ds
}

func TestFitPerfectLine(t *testing.T) {
	ds := mustDataset(t, []float64{0, 1, 2, 3}, []float64{1, 3, 5, 7})

	fit, err := Fit(ds)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if !approxEqual(fit.Intercept, 1, 1e-12) {
		t.Errorf("intercept = %v, want 1", fit.Intercept)
	}
	if !approxEqual(fit.Slope, 2, 1e-12) {
		t.Errorf("slope = %v, want 2", fit.Slope)
	}
	if fit.Sigma != 0 {
		t.Errorf("sigma = %v, want 0", fit.Sigma)
	}
	if !approxEqual(fit.RSquared, 1, 1e-12) {
		t.Errorf("R² = %v, want 1", fit.RSquared)
	}
	for i, d := range fit.CooksD {
		if d != 0 {
			t.Errorf("CooksD[%d] = %v, want 0 for a perfect fit", i, d)
		}
	}
}

// Closed-form check against hand-computed values for x={0,1,2}, y={0,1,3}.
func TestFitClosedForm(t *testing.T) {
	ds := mustDataset(t, []float64{0, 1, 2}, []float64{0, 1, 3})

	fit, err := Fit(ds)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	sigma := math.Sqrt(1.0 / 6.0)
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"intercept", fit.Intercept, -1.0 / 6.0},
		{"slope", fit.Slope, 1.5},
		{"sigma", fit.Sigma, sigma},
		{"slope SE", fit.SlopeSE, sigma / math.Sqrt2},
		{"intercept SE", fit.InterceptSE, sigma * math.Sqrt(5.0/6.0)},
		{"R²", fit.RSquared, 27.0 / 28.0},
		{"residual 0", fit.Residuals[0], 1.0 / 6.0},
		{"residual 1", fit.Residuals[1], -1.0 / 3.0},
		{"residual 2", fit.Residuals[2], 1.0 / 6.0},
		{"leverage 0", fit.Leverage[0], 5.0 / 6.0},
		{"leverage 1", fit.Leverage[1], 1.0 / 3.0},
		{"leverage 2", fit.Leverage[2], 5.0 / 6.0},
		{"cook 0", fit.CooksD[0], 2.5},
		{"cook 1", fit.CooksD[1], 0.25},
		{"cook 2", fit.CooksD[2], 2.5},
	}
	for _, c := range checks {
		if !approxEqual(c.got, c.want, 1e-9) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestFitDegenerateInput(t *testing.T) {
	tests := []struct {
		name    string
		xs, ys  []float64
		wantErr error
	}{
		{"single observation", []float64{1}, []float64{1}, errs.ErrTooFewObservations},
		{"all x equal", []float64{2, 2, 2}, []float64{1, 2, 3}, errs.ErrDegenerateDesign},
		{"two identical points", []float64{1, 1}, []float64{5, 5}, errs.ErrDegenerateDesign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := mustDataset(t, tt.xs, tt.ys)
			if _, err := Fit(ds); !errors.Is(err, tt.wantErr) {
				t.Errorf("Fit error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("nil dataset", func(t *testing.T) {
		if _, err := Fit(nil); !errors.Is(err, errs.ErrTooFewObservations) {
			t.Errorf("Fit(nil) error = %v, want %v", err, errs.ErrTooFewObservations)
		}
	})
}

func TestFitDiagnosticLengths(t *testing.T) {
	ds, err := dataset.Simulate(dataset.WithSampleSize(25), dataset.WithSeed(3))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	fit, err := Fit(ds)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if len(fit.Residuals) != ds.Len() || len(fit.Leverage) != ds.Len() || len(fit.CooksD) != ds.Len() {
		t.Fatalf("diagnostic lengths = %d/%d/%d, want %d each",
			len(fit.Residuals), len(fit.Leverage), len(fit.CooksD), ds.Len())
	}
	if fit.Fingerprint != ds.Fingerprint() {
		t.Errorf("fingerprint = %x, want %x", fit.Fingerprint, ds.Fingerprint())
	}
}

// The outlier comparison scenario: injecting two extreme values at the
// smallest-x rows must drag the slope by more than half its clean value,
// dominate Cook's distance, and be undone by dropping those rows.
func TestFitOutlierInfluence(t *testing.T) {
	clean, err := dataset.Simulate(dataset.WithSeed(42))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	outlier, err := clean.WithOutliers(dataset.DefaultOutlierYs...)
	if err != nil {
		t.Fatalf("WithOutliers failed: %v", err)
	}

	cleanFit, err := Fit(clean)
	if err != nil {
		t.Fatalf("Fit(clean) failed: %v", err)
	}
	outlierFit, err := Fit(outlier)
	if err != nil {
		t.Fatalf("Fit(outlier) failed: %v", err)
	}

	if !approxEqual(cleanFit.Slope, 0.9, 0.15) {
		t.Errorf("clean slope = %v, want close to the simulated correlation 0.9", cleanFit.Slope)
	}

	relShift := math.Abs(outlierFit.Slope-cleanFit.Slope) / math.Abs(cleanFit.Slope)
	if relShift <= 0.5 {
		t.Errorf("relative slope shift = %v, want > 0.5", relShift)
	}

	t.Run("clean data has no dominating observation", func(t *testing.T) {
		if _, d := cleanFit.MaxCook(); d >= 0.7 {
			t.Errorf("max Cook's distance on clean data = %v, want < 0.7", d)
		}
	})

	t.Run("an injected row dominates the outlier fit", func(t *testing.T) {
		idx, d := outlierFit.MaxCook()
		if idx > 1 {
			t.Errorf("max Cook's distance at row %d, want one of the injected rows 0 or 1", idx)
		}
		if d <= 0.7 {
			t.Errorf("max Cook's distance on outlier data = %v, want > 0.7", d)
		}
	})

	t.Run("dropping the injected rows restores the slope", func(t *testing.T) {
		trimmed, err := outlier.Drop(0, 1)
		if err != nil {
			t.Fatalf("Drop failed: %v", err)
		}
		trimmedFit, err := Fit(trimmed)
		if err != nil {
			t.Fatalf("Fit(trimmed) failed: %v", err)
		}

		before := math.Abs(outlierFit.Slope - cleanFit.Slope)
		after := math.Abs(trimmedFit.Slope - cleanFit.Slope)
		if after >= before {
			t.Errorf("slope distance after dropping = %v, want < %v", after, before)
		}
	})
}

func TestPredict(t *testing.T) {
	fit := &Result{Intercept: 1, Slope: 2}
	if got := fit.Predict(3); got != 7 {
		t.Errorf("Predict(3) = %v, want 7", got)
	}
}

func TestMeanSE(t *testing.T) {
	ds := mustDataset(t, []float64{0, 1, 2}, []float64{0, 1, 3})

	fit, err := Fit(ds)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// At x = x̄ the band is narrowest: sigma*sqrt(1/n).
	narrow := fit.Sigma * math.Sqrt(1.0/3.0)
	if got := fit.MeanSE(1); !approxEqual(got, narrow, 1e-12) {
		t.Errorf("MeanSE(1) = %v, want %v", got, narrow)
	}

	// Sxx = 2, so at x = 0: sigma*sqrt(1/3 + 1/2).
	edge := fit.Sigma * math.Sqrt(1.0/3.0+0.5)
	if got := fit.MeanSE(0); !approxEqual(got, edge, 1e-12) {
		t.Errorf("MeanSE(0) = %v, want %v", got, edge)
	}

	if fit.MeanSE(0) <= fit.MeanSE(1) {
		t.Error("band should widen away from the x mean")
	}

	zero := &Result{}
	if got := zero.MeanSE(5); got != 0 {
		t.Errorf("zero-value MeanSE = %v, want 0", got)
	}
}
