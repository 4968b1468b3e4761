package report

import (
	"github.com/arloliu/tailfit/loo"
)

// olsInterval is the large-sample 95% normal quantile applied to
// least-squares standard errors.
const olsInterval = 1.96

// CoefficientRow is one coefficient estimate with its 95% interval, ready
// for a forest plot or table. Bayesian rows carry credible intervals,
// least-squares rows carry normal confidence intervals.
type CoefficientRow struct {
	Label    string
	Method   string // "ols" or the likelihood family name
	Param    string // "intercept" or "slope"
	Estimate float64
	Lower    float64
	Upper    float64
}

// CoefficientRows extracts intercept and slope rows from every entry, in
// label order with least-squares fits before Bayesian ones.
func (c *Comparison) CoefficientRows() []CoefficientRow {
	var rows []CoefficientRow
	for _, label := range c.labels {
		entry := c.entries[label]
		if entry.OLS != nil {
			f := entry.OLS
			rows = append(rows,
				CoefficientRow{
					Label:    label,
					Method:   "ols",
					Param:    "intercept",
					Estimate: f.Intercept,
					Lower:    f.Intercept - olsInterval*f.InterceptSE,
					Upper:    f.Intercept + olsInterval*f.InterceptSE,
				},
				CoefficientRow{
					Label:    label,
					Method:   "ols",
					Param:    "slope",
					Estimate: f.Slope,
					Lower:    f.Slope - olsInterval*f.SlopeSE,
					Upper:    f.Slope + olsInterval*f.SlopeSE,
				})
		}
		if entry.Bayes != nil {
			for _, p := range []string{"intercept", "slope"} {
				summary, ok := entry.Bayes.Param(p)
				if !ok {
					continue
				}
				rows = append(rows, CoefficientRow{
					Label:    label,
					Method:   entry.Bayes.Family.String(),
					Param:    p,
					Estimate: summary.Mean,
					Lower:    summary.Lower,
					Upper:    summary.Upper,
				})
			}
		}
	}

	return rows
}

// InfluenceRow is one observation's influence diagnostics under one label.
// HasCook and HasK mark which diagnostics the label's fits provide.
type InfluenceRow struct {
	Label   string
	Index   int
	CooksD  float64
	HasCook bool
	K       float64
	HasK    bool
	Band    loo.Band
}

// InfluenceRows extracts per-observation influence diagnostics from every
// entry that has a least-squares fit or a cross-validation result.
func (c *Comparison) InfluenceRows() []InfluenceRow {
	var rows []InfluenceRow
	for _, label := range c.labels {
		entry := c.entries[label]
		if entry.OLS == nil && entry.LOO == nil {
			continue
		}
		for i := range entry.N() {
			row := InfluenceRow{Label: label, Index: i}
			if entry.OLS != nil {
				row.CooksD = entry.OLS.CooksD[i]
				row.HasCook = true
			}
			if entry.LOO != nil {
				row.K = entry.LOO.Points[i].K
				row.Band = entry.LOO.Points[i].Band
				row.HasK = true
			}
			rows = append(rows, row)
		}
	}

	return rows
}
