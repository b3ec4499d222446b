// Command genmatrix writes random square weight matrices to a text file in
// the format read by matrix.Read.
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

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
	parser := argparse.NewParser("genmatrix", "Generate random square matrices")
	output := parser.String("o", "output", &argparse.Options{Help: "Output file", Default: "input.txt"})
	sizes := parser.String("s", "sizes", &argparse.Options{Help: "Comma-separated matrix sizes", Default: "5,10"})
	maxValue := parser.Int("m", "max", &argparse.Options{Help: "Largest entry value", Default: matrix.DefaultMaxValue})
	seed := parser.Int("", "seed", &argparse.Options{Help: "Random seed (0 picks one from the clock)", Default: 0})
	logLevel := parser.String("", "log-level", &argparse.Options{Help: "Log level (debug, info, warn, error)", Default: "info"})
	if err := parser.Parse(args); err != nil {
		fmt.Fprint(stdout, parser.Usage(err))
		return exitError
	}

	if err := log.SetupLogger(*logLevel); err != nil {
		cli.Fail(stdout, "invalid log level", err)
		return exitError
	}

	if err := generate(stdout, *output, *sizes, *maxValue, uint64(*seed)); err != nil {
		cli.Fail(stdout, "matrix generation failed", err)
		return exitError
	}
	return cli.ExitOK
}

func generate(w io.Writer, path, sizeList string, maxValue int, seed uint64) error {
	sizes, err := parseSizes(sizeList)
	if err != nil {
		return err
	}
	if maxValue < 0 {
		return errors.NewValidationError("max", "must not be negative", maxValue)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	rng := rand.New(rand.NewPCG(seed, seed>>32))
	ms := make([]matrix.Matrix, len(sizes))
	for i, n := range sizes {
		ms[i] = matrix.Random(rng, n, maxValue)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := matrix.Write(f, ms...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}

	log.GetLoggerWithName("genmatrix").Info("matrices written",
		log.OperationKey, log.OperationGenerate,
		log.FileKey, path,
		log.SeedKey, seed,
	)
	fmt.Fprintf(w, "Wrote %d matrices (%s) to %s\n", len(ms), describe(sizes), path)
	return nil
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n <= 0 {
			return nil, errors.NewValidationError("sizes", "must be a comma-separated list of positive integers", s)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.NewValidationError("sizes", "at least one size is required", s)
	}
	return sizes, nil
}

func describe(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = fmt.Sprintf("%dx%d", n, n)
	}
	return strings.Join(parts, ", ")
}
