// Package chart draws the error analysis figures with gonum/plot and writes
// them as PNG files.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/YuminosukeSato/errbound/bound"
	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/YuminosukeSato/errbound/pkg/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Output file names.
const (
	AnalysisFile   = "error_analysis.png"
	CumulativeFile = "cumulative_error.png"
	RegressionFile = "regression_plot.png"
)

// single-panel figures are always drawn at this size.
const (
	singleWidth  = 10 * vg.Inch
	singleHeight = 6 * vg.Inch
)

// Renderer writes chart sets to image files.
type Renderer struct {
	outDir string
	dpi    int
	width  vg.Length
	height vg.Length

	logger log.Logger
}

// NewRenderer creates a Renderer writing into the working directory unless
// WithOutputDir is given.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		outDir: ".",
		dpi:    DefaultDPI,
		width:  DefaultWidth,
		height: DefaultHeight,
		logger: log.GetLoggerWithName("chart"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.dpi <= 0 {
		return nil, errors.NewValidationError("dpi", "must be positive", r.dpi)
	}
	if r.width <= 0 || r.height <= 0 {
		return nil, errors.NewValidationError("size", "width and height must be positive",
			fmt.Sprintf("%vx%v", r.width, r.height))
	}
	return r, nil
}

// OutputDir returns the directory files are written to.
func (r *Renderer) OutputDir() string {
	return r.outDir
}

// Render writes the four-panel analysis figure and the cumulative
// distribution figure. It returns the paths written, in that order.
func (r *Renderer) Render(set bound.ChartSet) ([]string, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", r.outDir)
	}

	var paths []string

	analysis := filepath.Join(r.outDir, AnalysisFile)
	err := errors.SafeExecute("render "+AnalysisFile, func() error {
		grid, err := analysisPanels(set)
		if err != nil {
			return err
		}
		return r.writeGrid(analysis, grid, r.width, r.height)
	})
	if err != nil {
		return paths, err
	}
	paths = append(paths, analysis)

	cumulative := filepath.Join(r.outDir, CumulativeFile)
	err = errors.SafeExecute("render "+CumulativeFile, func() error {
		p, err := cumulativePlot(set.Cumulative)
		if err != nil {
			return err
		}
		return r.writeGrid(cumulative, [][]*plot.Plot{{p}}, singleWidth, singleHeight)
	})
	if err != nil {
		return paths, err
	}
	paths = append(paths, cumulative)

	return paths, nil
}

// Regression is the data for the regression figure.
type Regression struct {
	X, Y      []float64
	Slope     float64
	Intercept float64
	R2        float64
}

// RenderRegression writes the regression scatter with its fitted line and
// returns the path written.
func (r *Renderer) RenderRegression(reg Regression) (string, error) {
	if len(reg.X) != len(reg.Y) {
		return "", errors.NewDimensionError("RenderRegression", len(reg.X), len(reg.Y), 0)
	}
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create output directory %s", r.outDir)
	}

	path := filepath.Join(r.outDir, RegressionFile)
	err := errors.SafeExecute("render "+RegressionFile, func() error {
		p, err := regressionPlot(reg)
		if err != nil {
			return err
		}
		return r.writeGrid(path, [][]*plot.Plot{{p}}, singleWidth, singleHeight)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// writeGrid aligns plots on a rows×cols grid and encodes the canvas as PNG.
func (r *Renderer) writeGrid(path string, plots [][]*plot.Plot, width, height vg.Length) error {
	start := time.Now()

	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(r.dpi))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
		PadX:      vg.Points(30),
		PadY:      vg.Points(30),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j, p := range plots[i] {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}

	r.logger.Info("chart written",
		log.OperationKey, log.OperationRender,
		log.FileKey, path,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}
