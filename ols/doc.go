// Package ols provides ordinary least squares regression with classical
// influence diagnostics.
//
// This is the frequentist half of the model comparison: it fits
// y = intercept + slope*x by least squares and reports, per observation,
// the leverage and Cook's distance that quantify how strongly that
// observation pulls on the fitted coefficients.
//
// # Key Outputs
//
//   - Intercept and slope point estimates with standard errors
//   - Residual standard error and R²
//   - Per-observation residuals, leverage, and Cook's distance
//
// # Usage
//
//	fit, err := ols.Fit(ds)
//	if err != nil {
//	    return err
//	}
//	idx, d := fit.MaxCook()
//	fmt.Printf("slope %.3f ± %.3f, worst Cook's distance %.3f at row %d\n",
//	    fit.Slope, fit.SlopeSE, d, idx)
//
// Fit fails only on degenerate input: fewer than 2 observations, or fewer
// than 2 distinct x values.
package ols
