package bound

import (
	"fmt"
	"sort"

	"github.com/YuminosukeSato/errbound/dataset"
	"github.com/YuminosukeSato/errbound/pkg/errors"
)

// DefaultHistogramBins is the bin count used when BuildCharts gets bins <= 0.
const DefaultHistogramBins = 50

// Role tells the renderer what a reference line stands for.
type Role string

const (
	RoleMean Role = "mean"
	RoleP95  Role = "p95"
	RoleP99  Role = "p99"
	RoleP999 Role = "p99.9"
	RoleMax  Role = "max"
)

// Marker is a labelled reference line at Value.
type Marker struct {
	Role  Role
	Label string
	Value float64
}

// Histogram describes a histogram panel with vertical markers.
type Histogram struct {
	Title   string
	XLabel  string
	YLabel  string
	Values  []float64
	Bins    int
	Markers []Marker
}

// Scatter describes a scatter panel with horizontal reference lines.
type Scatter struct {
	Title  string
	XLabel string
	YLabel string
	X, Y   []float64
	Lines  []Marker
}

// Cumulative describes the cumulative distribution figure: sorted absolute
// errors against the cumulative percentage of samples.
type Cumulative struct {
	Title  string
	XLabel string
	YLabel string
	X, Y   []float64
	// Levels are horizontal lines at 95, 99 and 99.9 percent.
	Levels []Marker
	// Thresholds are vertical lines at the matching percentiles.
	Thresholds []Marker
}

// ChartSet is everything the chart renderer needs. Only finite values are
// included in any series.
type ChartSet struct {
	ErrorHistogram Histogram
	ErrorVsExact   Scatter
	// RelativeHistogram is nil when no record has a defined relative error.
	RelativeHistogram *Histogram
	QQ                QQDiagnostic
	Cumulative        Cumulative
}

// BuildCharts assembles the chart data for obs, its error records and report.
// obs and errs must have the same length. bins <= 0 selects
// DefaultHistogramBins.
func BuildCharts(obs dataset.ObservationSet, errs []ErrorRecord, r *BoundReport, bins int) (ChartSet, error) {
	if len(obs) != len(errs) {
		return ChartSet{}, errors.NewDimensionError("BuildCharts", len(obs), len(errs), 0)
	}
	if r == nil {
		return ChartSet{}, errors.NewValueError("BuildCharts", "nil report")
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	abs := errors.FiniteOnly(AbsoluteErrors(errs))

	set := ChartSet{
		ErrorHistogram: Histogram{
			Title:  "Absolute Error Distribution",
			XLabel: "Absolute Error",
			YLabel: "Frequency",
			Values: abs,
			Bins:   bins,
			Markers: []Marker{
				{Role: RoleMean, Label: fmt.Sprintf("Mean: %.6f", r.Mean), Value: r.Mean},
				{Role: RoleP999, Label: fmt.Sprintf("99.9%%: %.6f", r.P999), Value: r.P999},
				{Role: RoleMax, Label: fmt.Sprintf("Max: %.6f", r.Max), Value: r.Max},
			},
		},
		ErrorVsExact: errorVsExact(obs, errs, r),
		QQ:           NormalProbability(abs),
		Cumulative:   cumulative(abs, r),
	}

	if r.Relative != nil {
		pct := PercentageErrors(errs)
		meanPct := r.Relative.Mean * 100
		p999Pct := r.Relative.P999 * 100
		set.RelativeHistogram = &Histogram{
			Title:  "Relative Error Distribution",
			XLabel: "Percentage Error (%)",
			YLabel: "Frequency",
			Values: pct,
			Bins:   bins,
			Markers: []Marker{
				{Role: RoleMean, Label: fmt.Sprintf("Mean: %.2f%%", meanPct), Value: meanPct},
				{Role: RoleP999, Label: fmt.Sprintf("99.9%%: %.2f%%", p999Pct), Value: p999Pct},
			},
		}
	}
	return set, nil
}

func errorVsExact(obs dataset.ObservationSet, errs []ErrorRecord, r *BoundReport) Scatter {
	s := Scatter{
		Title:  "Error vs Exact Value",
		XLabel: "Exact Value",
		YLabel: "Absolute Error",
		X:      make([]float64, 0, len(obs)),
		Y:      make([]float64, 0, len(obs)),
		Lines: []Marker{
			{Role: RoleP999, Label: fmt.Sprintf("99.9%% bound: %.6f", r.P999), Value: r.P999},
			{Role: RoleMean, Label: fmt.Sprintf("Mean: %.6f", r.Mean), Value: r.Mean},
		},
	}
	for i, o := range obs {
		if errors.IsFinite(o.Exact) && errors.IsFinite(errs[i].Absolute) {
			s.X = append(s.X, o.Exact)
			s.Y = append(s.Y, errs[i].Absolute)
		}
	}
	return s
}

func cumulative(abs []float64, r *BoundReport) Cumulative {
	sorted := make([]float64, len(abs))
	copy(sorted, abs)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	y := make([]float64, len(sorted))
	for i := range sorted {
		y[i] = float64(i+1) / n * 100
	}

	return Cumulative{
		Title:  "Cumulative Error Distribution",
		XLabel: "Absolute Error",
		YLabel: "Cumulative Percentage (%)",
		X:      sorted,
		Y:      y,
		Levels: []Marker{
			{Role: RoleP95, Label: "95%", Value: P95},
			{Role: RoleP99, Label: "99%", Value: P99},
			{Role: RoleP999, Label: "99.9%", Value: P999},
		},
		Thresholds: []Marker{
			{Role: RoleP95, Value: r.P95},
			{Role: RoleP99, Value: r.P99},
			{Role: RoleP999, Value: r.P999},
		},
	}
}
