package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/arloliu/tailfit/errs"
	"github.com/arloliu/tailfit/report"
)

// forestRows adapts coefficient rows to the scatter and error-bar
// interfaces. Rows are drawn top to bottom in input order.
type forestRows []report.CoefficientRow

func (f forestRows) Len() int { return len(f) }

func (f forestRows) XY(i int) (x, y float64) {
	return f[i].Estimate, float64(len(f) - 1 - i)
}

// XError reports the distances from the estimate to the interval bounds.
func (f forestRows) XError(i int) (low, high float64) {
	return f[i].Estimate - f[i].Lower, f[i].Upper - f[i].Estimate
}

// Forest renders a forest plot of the rows matching the given parameter
// name, one horizontal interval per model and method, and saves it to path.
//
// Rows typically come from Comparison.CoefficientRows; pass "slope" or
// "intercept" to select the parameter. Returns ErrNoFits when no row
// matches.
func Forest(rows []report.CoefficientRow, param, path string) error {
	var selected forestRows
	for _, r := range rows {
		if r.Param == param {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		return fmt.Errorf("no %q coefficient rows: %w", param, errs.ErrNoFits)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s estimates with 95%% intervals", param)
	p.X.Label.Text = param

	bars, err := plotter.NewXErrorBars(selected)
	if err != nil {
		return fmt.Errorf("build error bars: %w", err)
	}
	points, err := plotter.NewScatter(selected)
	if err != nil {
		return fmt.Errorf("build points: %w", err)
	}
	points.GlyphStyle.Color = plotutil.Color(0)
	points.GlyphStyle.Radius = vg.Points(2.5)

	// NominalY labels categories bottom up, so reverse to keep the first
	// row on top.
	names := make([]string, len(selected))
	for i, r := range selected {
		names[len(selected)-1-i] = r.Label + " / " + r.Method
	}
	p.NominalY(names...)
	p.Add(plotter.NewGrid(), bars, points)

	height := vg.Length(1.0+0.4*float64(len(selected))) * vg.Inch

	return p.Save(7*vg.Inch, height, path)
}
