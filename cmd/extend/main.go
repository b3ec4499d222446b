// Command extend reads a pattern graph and a host graph from a matrix file
// and prints the cheapest extension of the host that contains the pattern.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/errbound/experiment"
	"github.com/YuminosukeSato/errbound/internal/cli"
	"github.com/YuminosukeSato/errbound/matrix"
	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/YuminosukeSato/errbound/pkg/log"
	"github.com/akamensky/argparse"
)

const exitError = 1

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	parser := argparse.NewParser("extend", "Find the minimal extension of a host graph containing a pattern graph")
	input := parser.String("i", "input", &argparse.Options{Help: "Matrix file holding the pattern then the host graph", Default: "input.txt"})
	output := parser.String("o", "output", &argparse.Options{Help: "File the cost and extension matrix are written to", Default: "output.txt"})
	method := parser.Selector("", "method", []string{"exact", "approx"}, &argparse.Options{Help: "Search method", Default: "exact"})
	logLevel := parser.String("", "log-level", &argparse.Options{Help: "Log level (debug, info, warn, error)", Default: "info"})
	if err := parser.Parse(args); err != nil {
		fmt.Fprint(stdout, parser.Usage(err))
		return exitError
	}

	if err := log.SetupLogger(*logLevel); err != nil {
		cli.Fail(stdout, "invalid log level", err)
		return exitError
	}

	if err := extend(stdout, *input, *output, *method); err != nil {
		cli.Fail(stdout, "extension failed", err)
		return exitError
	}
	return cli.ExitOK
}

func extend(w io.Writer, inPath, outPath, method string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return errors.Wrapf(err, "open %s", inPath)
	}
	ms, err := matrix.Read(in)
	in.Close()
	if err != nil {
		return errors.Wrapf(err, "read %s", inPath)
	}
	if len(ms) != 2 {
		return errors.NewValueError("extend", fmt.Sprintf("%s must hold exactly two matrices, found %d", inPath, len(ms)))
	}
	g, h := ms[0], ms[1]

	fmt.Fprintf(w, "Graph 1 (%dx%d):\n", g.Size(), g.Size())
	printMatrix(w, g)
	fmt.Fprintf(w, "\nGraph 2 (%dx%d):\n", h.Size(), h.Size())
	printMatrix(w, h)

	solve := experiment.Exact
	if method == "approx" {
		solve = experiment.Approximate
	}
	p, err := solve(g, h)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nMinimal change: %d\n", p.Cost)
	fmt.Fprintf(w, "Placement: %v\n", p.Mapping)
	fmt.Fprintln(w, "Minimal subgraph:")
	printMatrix(w, p.Extension)

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}
	if _, err := fmt.Fprintf(out, "%d\n", p.Cost); err != nil {
		out.Close()
		return errors.Wrapf(err, "write %s", outPath)
	}
	if err := matrix.Write(out, p.Extension); err != nil {
		out.Close()
		return err
	}
	return errors.WithStack(out.Close())
}

func printMatrix(w io.Writer, m matrix.Matrix) {
	var buf []byte
	for _, row := range m {
		for j, v := range row {
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = fmt.Appendf(buf, "%d", v)
		}
		buf = append(buf, '\n')
	}
	w.Write(buf)
}
