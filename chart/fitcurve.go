package chart

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/arloliu/tailfit/bayes"
	"github.com/arloliu/tailfit/dataset"
	"github.com/arloliu/tailfit/errs"
	"github.com/arloliu/tailfit/ols"
)

// Grid resolution of fitted curves and their bands.
const curvePoints = 60

// Normal critical value for the central 95% interval.
const bandCritical = 1.96

// Curve names one fitted model to draw over the data. At least one of
// OLS and Bayes must be set; when both are, the Bayesian line and band
// are drawn solid and the least-squares line dashed for contrast.
type Curve struct {
	Name  string
	OLS   *ols.Result
	Bayes *bayes.Fit
}

// FitCurve renders the dataset as a scatter overlaid with each curve's
// fitted regression line and 95% band, then saves the plot to path.
// Bayesian bands are credible intervals of the posterior mean line,
// least-squares bands are pointwise confidence intervals.
func FitCurve(ds *dataset.Dataset, curves []Curve, path string) error {
	if ds == nil {
		return fmt.Errorf("fit curve: %w", errs.ErrTooFewObservations)
	}
	if len(curves) == 0 {
		return fmt.Errorf("no curves: %w", errs.ErrNoFits)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Regression fits (%s data, n=%d)", ds.Variant(), ds.Len())
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Legend.Top = true

	data, err := plotter.NewScatter(xys(ds.X(), ds.Y()))
	if err != nil {
		return fmt.Errorf("data scatter: %w", err)
	}
	data.GlyphStyle.Color = color.Gray{Y: 96}
	data.GlyphStyle.Radius = vg.Points(2)
	p.Add(data)
	p.Legend.Add("observations", data)

	grid := xGrid(ds, curvePoints)
	for i, c := range curves {
		if c.OLS == nil && c.Bayes == nil {
			return fmt.Errorf("curve %q has no fit: %w", c.Name, errs.ErrNoFits)
		}
		col := plotutil.Color(i)

		if c.Bayes != nil {
			mean, lower, upper := posteriorCurve(c.Bayes, grid)
			if err := addBand(p, grid, lower, upper, col); err != nil {
				return fmt.Errorf("curve %q band: %w", c.Name, err)
			}

			ln, err := plotter.NewLine(xys(grid, mean))
			if err != nil {
				return fmt.Errorf("curve %q line: %w", c.Name, err)
			}
			ln.LineStyle.Color = col
			ln.LineStyle.Width = vg.Points(1.5)
			p.Add(ln)
			p.Legend.Add(c.Name, ln)
		}

		if c.OLS != nil {
			mean, lower, upper := leastSquaresCurve(c.OLS, grid)
			if c.Bayes == nil {
				if err := addBand(p, grid, lower, upper, col); err != nil {
					return fmt.Errorf("curve %q band: %w", c.Name, err)
				}
			}

			ln, err := plotter.NewLine(xys(grid, mean))
			if err != nil {
				return fmt.Errorf("curve %q line: %w", c.Name, err)
			}
			ln.LineStyle.Color = col
			ln.LineStyle.Width = vg.Points(1.5)
			if c.Bayes != nil {
				ln.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
				p.Add(ln)
				p.Legend.Add(c.Name+" (least squares)", ln)
			} else {
				p.Add(ln)
				p.Legend.Add(c.Name, ln)
			}
		}
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// xGrid spans the observed x range with n evenly spaced points.
func xGrid(ds *dataset.Dataset, n int) []float64 {
	xs := ds.X()
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}

	grid := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}

	return grid
}

// posteriorCurve evaluates the posterior mean line at each grid point
// along with its central 95% credible interval.
func posteriorCurve(fit *bayes.Fit, grid []float64) (mean, lower, upper []float64) {
	draws := fit.Draws()
	total := fit.TotalDraws()

	mean = make([]float64, len(grid))
	lower = make([]float64, len(grid))
	upper = make([]float64, len(grid))

	vals := make([]float64, total)
	for i, x := range grid {
		for s := 0; s < total; s++ {
			vals[s] = draws.At(s, 0) + draws.At(s, 1)*x
		}
		mean[i] = stat.Mean(vals, nil)
		sort.Float64s(vals)
		lower[i] = stat.Quantile(0.025, stat.Empirical, vals, nil)
		upper[i] = stat.Quantile(0.975, stat.Empirical, vals, nil)
	}

	return mean, lower, upper
}

// leastSquaresCurve evaluates the fitted line at each grid point along
// with its pointwise 95% confidence interval.
func leastSquaresCurve(fit *ols.Result, grid []float64) (mean, lower, upper []float64) {
	mean = make([]float64, len(grid))
	lower = make([]float64, len(grid))
	upper = make([]float64, len(grid))

	for i, x := range grid {
		y := fit.Predict(x)
		half := bandCritical * fit.MeanSE(x)
		mean[i] = y
		lower[i] = y - half
		upper[i] = y + half
	}

	return mean, lower, upper
}

// addBand fills the region between the lower and upper curves with a
// translucent polygon.
func addBand(p *plot.Plot, grid, lower, upper []float64, col color.Color) error {
	pts := make(plotter.XYs, 0, 2*len(grid))
	for i := range grid {
		pts = append(pts, plotter.XY{X: grid[i], Y: upper[i]})
	}
	for i := len(grid) - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: grid[i], Y: lower[i]})
	}

	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return err
	}
	poly.Color = translucent(col, 60)
	poly.LineStyle.Width = 0
	p.Add(poly)

	return nil
}
