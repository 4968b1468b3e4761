// Package chart renders comparison plots with gonum/plot: forest plots of
// coefficient estimates, influence diagnostics per observation, and fitted
// regression curves with uncertainty bands. The output format follows the
// file extension (.png, .svg, .pdf, ...).
package chart

import (
	"image/color"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// translucent reduces a palette color's alpha so filled bands do not hide
// the data behind them.
func translucent(c color.Color, alpha uint8) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = alpha

	return n
}

// thresholdLine builds a dashed horizontal reference line spanning
// [x0, x1] at height y.
func thresholdLine(x0, x1, y float64) (*plotter.Line, error) {
	ln, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y}, {X: x1, Y: y}})
	if err != nil {
		return nil, err
	}
	ln.LineStyle.Color = color.Gray{Y: 120}
	ln.LineStyle.Width = vg.Points(0.75)
	ln.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	return ln, nil
}

// xys pairs a shared x grid with one y series.
func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}

	return pts
}
