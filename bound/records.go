package bound

import (
	"math"

	"github.com/YuminosukeSato/errbound/dataset"
	"github.com/YuminosukeSato/errbound/pkg/errors"
)

// ErrorRecord holds the errors derived from one observation.
type ErrorRecord struct {
	// Absolute is |exact - approx|.
	Absolute float64
	// Relative is Absolute / |exact|. NaN when HasRelative is false.
	Relative float64
	// Percentage is Relative * 100. NaN when HasRelative is false.
	Percentage float64
	// HasRelative is false exactly when exact == 0.
	HasRelative bool
}

// RelativeError returns the relative error and whether it is defined.
func (r ErrorRecord) RelativeError() (float64, bool) {
	return r.Relative, r.HasRelative
}

// ComputeErrors derives one ErrorRecord per observation, in order.
func ComputeErrors(obs dataset.ObservationSet) []ErrorRecord {
	out := make([]ErrorRecord, len(obs))
	for i, o := range obs {
		abs := math.Abs(o.Exact - o.Approx)
		rec := ErrorRecord{
			Absolute:   abs,
			Relative:   math.NaN(),
			Percentage: math.NaN(),
		}
		if o.Exact != 0 {
			rec.Relative = abs / math.Abs(o.Exact)
			rec.Percentage = rec.Relative * 100
			rec.HasRelative = true
		}
		out[i] = rec
	}
	return out
}

// AbsoluteErrors returns the absolute error of every record.
func AbsoluteErrors(errs []ErrorRecord) []float64 {
	out := make([]float64, len(errs))
	for i, e := range errs {
		out[i] = e.Absolute
	}
	return out
}

// RelativeErrors returns the defined, finite relative errors in record order.
func RelativeErrors(errs []ErrorRecord) []float64 {
	out := make([]float64, 0, len(errs))
	for _, e := range errs {
		if e.HasRelative && errors.IsFinite(e.Relative) {
			out = append(out, e.Relative)
		}
	}
	return out
}

// PercentageErrors returns the defined, finite percentage errors in record order.
func PercentageErrors(errs []ErrorRecord) []float64 {
	out := make([]float64, 0, len(errs))
	for _, e := range errs {
		if e.HasRelative && errors.IsFinite(e.Percentage) {
			out = append(out, e.Percentage)
		}
	}
	return out
}
