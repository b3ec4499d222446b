// Package errbound estimates how large the error of an approximation can be,
// from paired exact and approximate results.
//
// The module is a set of small packages and commands:
//
//   - dataset: loads CSV files with exact and approx columns
//   - bound: per-observation errors, percentile and confidence bounds, the
//     console report and chart data
//   - chart: renders the charts to PNG with gonum/plot
//   - analyzer: the load, derive, aggregate and report pipeline
//   - linear, metrics: least-squares fit of approx on exact and its scores
//   - matrix, experiment: random weight matrices and the exact versus
//     diagonal-window minimal extension experiment that produces the CSV
//     inputs
//   - core/parallel: range splitting and a bounded job runner
//   - pkg/errors, pkg/log: typed errors with stack traces and structured
//     logging
//
// # Quick Start
//
//	obs, err := dataset.Load([]string{"results/run1.csv"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := bound.ComputeBounds(bound.ComputeErrors(obs))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(report)
//
// # Commands
//
//   - cmd/errbound: the full analysis with charts
//   - cmd/regress: regression of approx on exact
//   - cmd/experiment: generates result CSV files
//   - cmd/genmatrix, cmd/extend: matrix input files and single-pair extension
//
// # Error Handling
//
// Errors carry stack traces from cockroachdb/errors and are typed by
// category (EmptyInputError, SchemaError, ParseError, InsufficientDataError,
// NoValidRelativeErrorError). Use errors.As to branch on the category:
//
//	var schemaErr *errors.SchemaError
//	if errors.As(err, &schemaErr) {
//	    fmt.Println("missing:", schemaErr.Missing)
//	}
package errbound
