// Command regress fits approx = a*exact + b over CSV result files, prints the
// fit and writes a scatter plot with the regression line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/errbound/chart"
	"github.com/YuminosukeSato/errbound/core"
	"github.com/YuminosukeSato/errbound/dataset"
	"github.com/YuminosukeSato/errbound/internal/cli"
	"github.com/YuminosukeSato/errbound/linear"
	"github.com/YuminosukeSato/errbound/metrics"
	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/YuminosukeSato/errbound/pkg/log"
	"github.com/akamensky/argparse"
	"gonum.org/v1/gonum/mat"
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	parser := argparse.NewParser("regress", "Fit a linear regression of approx on exact")
	input := parser.String("i", "input", &argparse.Options{Help: "Directory containing the CSV result files", Default: "results"})
	outDir := parser.String("o", "out", &argparse.Options{Help: "Directory the plot is written to", Default: "."})
	dpi := parser.Int("", "dpi", &argparse.Options{Help: "Plot resolution", Default: chart.DefaultDPI})
	noCharts := parser.Flag("", "no-charts", &argparse.Options{Help: "Print the fit without rendering the plot"})
	logLevel := parser.String("", "log-level", &argparse.Options{Help: "Log level (debug, info, warn, error)", Default: "info"})
	if err := parser.Parse(args); err != nil {
		fmt.Fprint(stdout, parser.Usage(err))
		return cli.ExitFailure
	}

	if err := log.SetupLogger(*logLevel); err != nil {
		return cli.Fail(stdout, "invalid log level", err)
	}

	var renderer *chart.Renderer
	if !*noCharts {
		var err error
		renderer, err = chart.NewRenderer(chart.WithOutputDir(*outDir), chart.WithDPI(*dpi))
		if err != nil {
			return cli.Fail(stdout, "invalid chart options", err)
		}
	}

	if err := regress(stdout, *input, renderer); err != nil {
		return cli.Fail(stdout, "regression failed", err)
	}
	return cli.ExitOK
}

func regress(w io.Writer, dir string, renderer *chart.Renderer) error {
	files, err := dataset.Discover(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.NewEmptyInputError(dir)
	}
	fmt.Fprintf(w, "Found %d CSV file(s):\n", len(files))
	for _, f := range files {
		fmt.Fprintf(w, "  - %s\n", f)
	}

	obs, err := dataset.Load(files)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nCombined data: %d rows\n", obs.Len())

	x, y := obs.Exact(), obs.Approx()
	lr := linear.NewLinearRegression()
	slope, intercept, err := lr.FitLine(x, y)
	if err != nil {
		return err
	}

	X := mat.NewDense(len(x), 1, x)
	Y := mat.NewDense(len(y), 1, y)
	r2, summary, err := evaluate(lr, X, Y)
	if err != nil {
		return err
	}
	log.GetLoggerWithName("regress").Info("model evaluated",
		log.ModelNameKey, "LinearRegression",
		log.SamplesKey, summary.N,
		log.R2ScoreKey, r2,
		"metrics.rmse", summary.RMSE,
		"metrics.mae", summary.MAE,
	)

	fmt.Fprintf(w, "\nRegression equation: y = %.2fx + %.2f\n", slope, intercept)
	fmt.Fprintf(w, "R² score: %.4f\n", r2)
	fmt.Fprintf(w, "Total data points: %d\n", len(x))

	if renderer == nil {
		return nil
	}
	path, err := renderer.RenderRegression(chart.Regression{
		X:         x,
		Y:         y,
		Slope:     slope,
		Intercept: intercept,
		R2:        r2,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Plot saved as '%s'\n", path)
	return nil
}

// evaluate scores a fitted model on X and computes the residual metrics of its
// predictions.
func evaluate(reg core.Regressor, X, Y mat.Matrix) (float64, metrics.Summary, error) {
	r2, err := reg.Score(X, Y)
	if err != nil {
		return 0, metrics.Summary{}, err
	}
	pred, err := reg.Predict(X)
	if err != nil {
		return 0, metrics.Summary{}, err
	}
	summary, err := metrics.Evaluate(metrics.ColumnVec(Y), metrics.ColumnVec(pred))
	if err != nil {
		return 0, metrics.Summary{}, err
	}
	return r2, summary, nil
}
