// Package dataset loads paired (exact, approx) observations from CSV files.
//
// Each file must have a header row containing at least the columns "exact"
// and "approx"; any other columns are ignored. Files are concatenated in the
// order they are given and rows keep their file order.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/YuminosukeSato/errbound/pkg/log"
)

// Required column names.
const (
	ExactColumn  = "exact"
	ApproxColumn = "approx"
)

// Observation is one paired measurement.
type Observation struct {
	Exact  float64
	Approx float64
}

// ObservationSet is the ordered concatenation of every loaded row.
// It is built once by Load and not modified afterwards.
type ObservationSet []Observation

// Len returns the number of observations.
func (s ObservationSet) Len() int { return len(s) }

// Exact returns the exact column as a new slice.
func (s ObservationSet) Exact() []float64 {
	out := make([]float64, len(s))
	for i, o := range s {
		out[i] = o.Exact
	}
	return out
}

// Approx returns the approx column as a new slice.
func (s ObservationSet) Approx() []float64 {
	out := make([]float64, len(s))
	for i, o := range s {
		out[i] = o.Approx
	}
	return out
}

// Load reads every file in paths and concatenates their rows.
// An empty paths slice is an EmptyInputError. Any failure aborts the whole
// load; there is no partial result.
func Load(paths []string) (ObservationSet, error) {
	if len(paths) == 0 {
		return nil, errors.NewEmptyInputError("")
	}

	logger := log.GetLoggerWithName("dataset").With(log.OperationKey, log.OperationLoad)

	var all ObservationSet
	for _, path := range paths {
		obs, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("file loaded", log.FileKey, path, log.SamplesKey, len(obs))
		all = append(all, obs...)
	}

	logger.Info("observations loaded", log.FilesKey, len(paths), log.SamplesKey, len(all))
	return all, nil
}

func loadFile(path string) (ObservationSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	return LoadReader(path, f)
}

// LoadReader reads a single CSV source. name is used in error messages.
func LoadReader(name string, r io.Reader) (ObservationSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewSchemaError(name, []string{ExactColumn, ApproxColumn}, nil)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read header of %s", name)
	}

	exactIdx, approxIdx, err := locateColumns(name, header)
	if err != nil {
		return nil, err
	}

	var obs ObservationSet
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		exact, err := parseCell(name, line, ExactColumn, record, exactIdx)
		if err != nil {
			return nil, err
		}
		approx, err := parseCell(name, line, ApproxColumn, record, approxIdx)
		if err != nil {
			return nil, err
		}
		obs = append(obs, Observation{Exact: exact, Approx: approx})
	}
	return obs, nil
}

func locateColumns(name string, header []string) (exactIdx, approxIdx int, err error) {
	exactIdx, approxIdx = -1, -1
	found := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		found[i] = h
		switch h {
		case ExactColumn:
			if exactIdx < 0 {
				exactIdx = i
			}
		case ApproxColumn:
			if approxIdx < 0 {
				approxIdx = i
			}
		}
	}

	var missing []string
	if exactIdx < 0 {
		missing = append(missing, ExactColumn)
	}
	if approxIdx < 0 {
		missing = append(missing, ApproxColumn)
	}
	if len(missing) > 0 {
		return -1, -1, errors.NewSchemaError(name, missing, found)
	}
	return exactIdx, approxIdx, nil
}

func parseCell(name string, line int, column string, record []string, idx int) (float64, error) {
	if idx >= len(record) {
		return 0, errors.NewParseError(name, line, column, "", nil)
	}
	raw := strings.TrimSpace(record[idx])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.NewParseError(name, line, column, raw, err)
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Discover lists the *.csv files directly inside dir in lexical order.
// It returns an empty slice, not an error, when dir holds no CSV files;
// callers report that case as an EmptyInputError.
func Discover(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", dir)
	}
	sort.Strings(paths)
	return paths, nil
}
