package chart

import (
	"fmt"

	"github.com/YuminosukeSato/errbound/bound"
	"github.com/YuminosukeSato/errbound/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

// analysisPanels lays out the 2×2 figure: error histogram, error vs exact,
// relative error histogram and the Q-Q plot.
func analysisPanels(set bound.ChartSet) ([][]*plot.Plot, error) {
	hist, err := histogramPlot(set.ErrorHistogram)
	if err != nil {
		return nil, err
	}
	scatter, err := scatterPlot(set.ErrorVsExact)
	if err != nil {
		return nil, err
	}

	var rel *plot.Plot
	if set.RelativeHistogram != nil {
		rel, err = histogramPlot(*set.RelativeHistogram)
		if err != nil {
			return nil, err
		}
	} else {
		rel = newPlot("Relative Error Distribution (not applicable: every exact value is zero)",
			"Percentage Error (%)", "Frequency")
	}

	qq, err := qqPlot(set.QQ)
	if err != nil {
		return nil, err
	}

	return [][]*plot.Plot{
		{hist, scatter},
		{rel, qq},
	}, nil
}

func histogramPlot(h bound.Histogram) (*plot.Plot, error) {
	p := newPlot(h.Title, h.XLabel, h.YLabel)
	if len(h.Values) == 0 {
		return p, nil
	}

	hist, err := plotter.NewHist(plotter.Values(h.Values), h.Bins)
	if err != nil {
		return nil, errors.Wrapf(err, "histogram %q", h.Title)
	}
	hist.FillColor = colorBars
	hist.LineStyle.Color = colorOutline
	hist.LineStyle.Width = vg.Points(0.5)
	p.Add(hist)

	top := p.Y.Max
	for _, m := range h.Markers {
		if err := addVertical(p, m, 0, top); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func scatterPlot(s bound.Scatter) (*plot.Plot, error) {
	p := newPlot(s.Title, s.XLabel, s.YLabel)
	if len(s.X) == 0 {
		return p, nil
	}

	pts, err := points(s.X, s.Y)
	if err != nil {
		return nil, err
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrapf(err, "scatter %q", s.Title)
	}
	sc.GlyphStyle.Color = colorPoints
	sc.GlyphStyle.Radius = vg.Points(1.5)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)

	left, right := p.X.Min, p.X.Max
	for _, m := range s.Lines {
		if err := addHorizontal(p, m, left, right); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func qqPlot(q bound.QQDiagnostic) (*plot.Plot, error) {
	title := "Q-Q Plot (Normal Distribution)"
	if errors.IsFinite(q.R) {
		title = fmt.Sprintf("Q-Q Plot (Normal Distribution), r = %.4f", q.R)
	}
	p := newPlot(title, "Theoretical Quantiles", "Ordered Absolute Errors")
	if len(q.Ordered) == 0 {
		return p, nil
	}

	pts, err := points(q.Theoretical, q.Ordered)
	if err != nil {
		return nil, err
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "q-q scatter")
	}
	sc.GlyphStyle.Color = colorBlue
	sc.GlyphStyle.Radius = vg.Points(1.5)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)

	if !errors.IsFinite(q.Slope) || !errors.IsFinite(q.Intercept) {
		return p, nil
	}
	x0, x1 := q.Theoretical[0], q.Theoretical[len(q.Theoretical)-1]
	fit, err := plotter.NewLine(plotter.XYs{
		{X: x0, Y: q.Intercept + q.Slope*x0},
		{X: x1, Y: q.Intercept + q.Slope*x1},
	})
	if err != nil {
		return nil, errors.Wrap(err, "q-q fit line")
	}
	fit.LineStyle = draw.LineStyle{Color: colorRed, Width: vg.Points(1.5)}
	p.Add(fit)
	return p, nil
}

func cumulativePlot(c bound.Cumulative) (*plot.Plot, error) {
	p := newPlot(c.Title, c.XLabel, c.YLabel)
	p.Legend.Top = false
	p.Legend.Left = false
	if len(c.X) == 0 {
		return p, nil
	}

	pts, err := points(c.X, c.Y)
	if err != nil {
		return nil, err
	}
	curve, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "cumulative curve")
	}
	curve.LineStyle = draw.LineStyle{Color: colorBlue, Width: vg.Points(2)}
	p.Add(curve)
	p.Legend.Add("Cumulative distribution", curve)

	left, right := p.X.Min, p.X.Max
	for _, m := range c.Levels {
		if err := addHorizontal(p, m, left, right); err != nil {
			return nil, err
		}
	}
	for _, m := range c.Thresholds {
		if err := addVertical(p, m, 0, 100); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func regressionPlot(reg Regression) (*plot.Plot, error) {
	p := newPlot("Linear Regression: approx vs exact", "exact", "approx")
	if len(reg.X) == 0 {
		return p, nil
	}

	pts, err := points(reg.X, reg.Y)
	if err != nil {
		return nil, err
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "regression scatter")
	}
	sc.GlyphStyle.Color = colorPoints
	sc.GlyphStyle.Radius = vg.Points(2)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	p.Legend.Add("Data points", sc)

	lo, hi := p.X.Min, p.X.Max
	const samples = 100
	fitted := make(plotter.XYs, samples)
	for i := range fitted {
		x := lo + (hi-lo)*float64(i)/float64(samples-1)
		fitted[i] = plotter.XY{X: x, Y: reg.Slope*x + reg.Intercept}
	}
	line, err := plotter.NewLine(fitted)
	if err != nil {
		return nil, errors.Wrap(err, "regression line")
	}
	line.LineStyle = draw.LineStyle{Color: colorRed, Width: vg.Points(2)}
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("y = %.2fx + %.2f", reg.Slope, reg.Intercept), line)
	p.Legend.Add(fmt.Sprintf("R² = %.4f", reg.R2))
	return p, nil
}

func addVertical(p *plot.Plot, m bound.Marker, y0, y1 float64) error {
	if !errors.IsFinite(m.Value) {
		return nil
	}
	l, err := plotter.NewLine(plotter.XYs{{X: m.Value, Y: y0}, {X: m.Value, Y: y1}})
	if err != nil {
		return errors.Wrapf(err, "marker %s", m.Role)
	}
	l.LineStyle = markerStyle(m.Role)
	p.Add(l)
	if m.Label != "" {
		p.Legend.Add(m.Label, l)
	}
	return nil
}

func addHorizontal(p *plot.Plot, m bound.Marker, x0, x1 float64) error {
	if !errors.IsFinite(m.Value) {
		return nil
	}
	l, err := plotter.NewLine(plotter.XYs{{X: x0, Y: m.Value}, {X: x1, Y: m.Value}})
	if err != nil {
		return errors.Wrapf(err, "marker %s", m.Role)
	}
	l.LineStyle = markerStyle(m.Role)
	p.Add(l)
	if m.Label != "" {
		p.Legend.Add(m.Label, l)
	}
	return nil
}

func points(xs, ys []float64) (plotter.XYs, error) {
	if len(xs) != len(ys) {
		return nil, errors.NewDimensionError("points", len(xs), len(ys), 0)
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts, nil
}
