// Command errbound computes error upper bounds from CSV files of exact and
// approximate results and renders the diagnostic charts.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/errbound/analyzer"
	"github.com/YuminosukeSato/errbound/bound"
	"github.com/YuminosukeSato/errbound/chart"
	"github.com/YuminosukeSato/errbound/internal/cli"
	"github.com/YuminosukeSato/errbound/pkg/log"
	"github.com/akamensky/argparse"
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	parser := argparse.NewParser("errbound", "Compute upper bounds on approximation error from exact/approx CSV results")
	input := parser.String("i", "input", &argparse.Options{Help: "Directory containing the CSV result files", Default: "results"})
	outDir := parser.String("o", "out", &argparse.Options{Help: "Directory the charts are written to", Default: "."})
	confidence := parser.Float("c", "confidence", &argparse.Options{Help: "Confidence level of the mean upper bound", Default: bound.DefaultConfidence})
	dpi := parser.Int("", "dpi", &argparse.Options{Help: "Chart resolution", Default: chart.DefaultDPI})
	bins := parser.Int("", "bins", &argparse.Options{Help: "Histogram bin count", Default: bound.DefaultHistogramBins})
	noCharts := parser.Flag("", "no-charts", &argparse.Options{Help: "Print the report without rendering charts"})
	logLevel := parser.String("", "log-level", &argparse.Options{Help: "Log level (debug, info, warn, error)", Default: "info"})
	if err := parser.Parse(args); err != nil {
		fmt.Fprint(stdout, parser.Usage(err))
		return cli.ExitFailure
	}

	if err := log.SetupLogger(*logLevel); err != nil {
		return cli.Fail(stdout, "invalid log level", err)
	}

	opts := []analyzer.Option{
		analyzer.WithOutput(stdout),
		analyzer.WithConfidence(*confidence),
		analyzer.WithBins(*bins),
	}
	if !*noCharts {
		renderer, err := chart.NewRenderer(chart.WithOutputDir(*outDir), chart.WithDPI(*dpi))
		if err != nil {
			return cli.Fail(stdout, "invalid chart options", err)
		}
		opts = append(opts, analyzer.WithRenderer(renderer))
	}

	if _, err := analyzer.New(opts...).AnalyzeDir(*input); err != nil {
		return cli.Fail(stdout, "analysis failed", err)
	}
	return cli.ExitOK
}
