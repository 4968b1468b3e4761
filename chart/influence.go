package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/arloliu/tailfit/errs"
	"github.com/arloliu/tailfit/loo"
	"github.com/arloliu/tailfit/ols"
)

// Series is a labeled per-observation diagnostic, indexed the same way as
// the dataset it was computed from.
type Series struct {
	Name   string
	Values []float64
}

// CookSeries extracts the Cook's distance diagnostic from a least-squares
// fit.
func CookSeries(name string, fit *ols.Result) Series {
	values := make([]float64, len(fit.CooksD))
	copy(values, fit.CooksD)

	return Series{Name: name, Values: values}
}

// ParetoSeries extracts the Pareto shape diagnostic from a
// cross-validation result.
func ParetoSeries(name string, res *loo.Result) Series {
	values := make([]float64, len(res.Points))
	for i, pt := range res.Points {
		values[i] = pt.K
	}

	return Series{Name: name, Values: values}
}

// Influence renders diagnostic values against observation index, one
// glyph color per series, with dashed reference lines at the 0.5, 0.7
// and 1.0 thresholds. Non-finite values are skipped, so smoothed
// observations whose shape estimate diverged simply leave a gap.
func Influence(series []Series, yLabel, path string) error {
	if len(series) == 0 {
		return fmt.Errorf("no diagnostic series: %w", errs.ErrNoFits)
	}

	p := plot.New()
	p.Title.Text = "Influence diagnostics"
	p.X.Label.Text = "observation"
	p.Y.Label.Text = yLabel
	p.Legend.Top = true

	maxLen := 0
	for i, s := range series {
		if len(s.Values) > maxLen {
			maxLen = len(s.Values)
		}

		pts := make(plotter.XYs, 0, len(s.Values))
		for idx, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(idx), Y: v})
		}

		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Radius = vg.Points(2)

		p.Add(sc)
		p.Legend.Add(s.Name, sc)
	}

	for _, threshold := range []float64{loo.GoodMax, loo.OkMax, loo.BadMax} {
		ln, err := thresholdLine(-0.5, float64(maxLen)-0.5, threshold)
		if err != nil {
			return fmt.Errorf("threshold line: %w", err)
		}
		p.Add(ln)
	}

	return p.Save(8*vg.Inch, 4.5*vg.Inch, path)
}
