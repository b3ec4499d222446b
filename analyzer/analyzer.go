// Package analyzer runs the error bound pipeline end to end: load the CSV
// inputs, derive per-observation errors, aggregate them into a BoundReport,
// print the report and render the charts.
package analyzer

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/YuminosukeSato/errbound/bound"
	"github.com/YuminosukeSato/errbound/chart"
	"github.com/YuminosukeSato/errbound/dataset"
	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/YuminosukeSato/errbound/pkg/log"
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithConfidence sets the confidence level of the mean upper bound.
func WithConfidence(c float64) Option {
	return func(a *Analyzer) { a.confidence = c }
}

// WithBins sets the histogram bin count.
func WithBins(n int) Option {
	return func(a *Analyzer) { a.bins = n }
}

// WithRenderer enables chart rendering. Without it no image is written.
func WithRenderer(r *chart.Renderer) Option {
	return func(a *Analyzer) { a.renderer = r }
}

// WithOutput sets where the console report goes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(a *Analyzer) { a.out = w }
}

// Analyzer is the ErrorBoundAnalyzer pipeline.
type Analyzer struct {
	confidence float64
	bins       int
	renderer   *chart.Renderer
	out        io.Writer
	logger     log.Logger
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		confidence: bound.DefaultConfidence,
		bins:       bound.DefaultHistogramBins,
		out:        os.Stdout,
		logger:     log.GetLoggerWithName("analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result holds everything one run produced.
type Result struct {
	Files        []string
	Observations dataset.ObservationSet
	Errors       []bound.ErrorRecord
	Report       *bound.BoundReport
	Charts       bound.ChartSet
	// Artifacts lists the image files written.
	Artifacts []string
	// Degraded is set when the run succeeded without relative error
	// statistics (a NoValidRelativeErrorError).
	Degraded error
}

// AnalyzeDir analyzes every CSV file in dir. It fails with an
// EmptyInputError naming dir when there are none.
func (a *Analyzer) AnalyzeDir(dir string) (*Result, error) {
	files, err := dataset.Discover(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.NewEmptyInputError(dir)
	}
	return a.Analyze(files)
}

// Analyze runs the pipeline over files in the given order.
func (a *Analyzer) Analyze(files []string) (*Result, error) {
	start := time.Now()

	if len(files) > 0 {
		fmt.Fprintf(a.out, "Found %d CSV file(s):\n", len(files))
		for _, f := range files {
			fmt.Fprintf(a.out, "  - %s\n", f)
		}
	}

	obs, err := dataset.Load(files)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "\nLoaded %d data points\n\n", obs.Len())

	res := &Result{Files: files, Observations: obs}
	res.Errors = bound.ComputeErrors(obs)

	res.Report, err = bound.ComputeBounds(res.Errors, bound.WithConfidence(a.confidence))
	var noRel *errors.NoValidRelativeErrorError
	switch {
	case err == nil:
	case errors.As(err, &noRel) && res.Report != nil:
		res.Degraded = err
	default:
		return nil, err
	}

	if err := bound.Report(a.out, res.Report); err != nil {
		return nil, errors.Wrap(err, "write report")
	}

	res.Charts, err = bound.BuildCharts(obs, res.Errors, res.Report, a.bins)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("normal probability diagnostic",
		log.QQCorrelationKey, res.Charts.QQ.R,
	)

	if a.renderer != nil {
		res.Artifacts, err = a.renderer.Render(res.Charts)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(a.out)
		for _, p := range res.Artifacts {
			fmt.Fprintf(a.out, "Chart saved as '%s'\n", p)
		}
	}

	fmt.Fprintf(a.out, "\nAnalysis complete! Total data points: %d\n", obs.Len())

	a.logger.Info("analysis complete",
		log.OperationKey, log.OperationReport,
		log.FilesKey, len(files),
		log.SamplesKey, obs.Len(),
		log.RecommendedBoundKey, res.Report.RecommendedBound,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}
