package bound

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const labelWidth = 28

// Report writes the human readable summary of r to w.
func Report(w io.Writer, r *BoundReport) error {
	_, err := io.WriteString(w, r.String())
	return err
}

// String renders every field of the report in the console layout.
func (r *BoundReport) String() string {
	var b strings.Builder

	b.WriteString("ABSOLUTE ERROR ANALYSIS\n")
	line(&b, "Mean absolute error:", r.Mean)
	line(&b, "Median absolute error:", r.Median)
	line(&b, "Std deviation:", r.StdDev)
	line(&b, "Minimum observed error:", r.Min)
	line(&b, "Maximum observed error:", r.Max)

	b.WriteString("\nSTATISTICAL UPPER BOUNDS\n")
	line(&b, confidenceLabel(r.Confidence), r.MeanUpperBound)
	line(&b, "95th percentile:", r.P95)
	line(&b, "99th percentile:", r.P99)
	line(&b, "99.9th percentile:", r.P999)
	line(&b, "Mean + 3σ (99.7% rule):", r.ThreeSigma)
	line(&b, "Maximum observed:", r.Max)

	b.WriteString("\nRELATIVE ERROR BOUNDS\n")
	fmt.Fprintf(&b, "Valid samples for relative error: %d / %d (%.2f%%)\n", r.ValidRelative, r.Samples, r.RelativeFraction*100)
	if r.Relative != nil {
		pctLine(&b, "Mean relative error:", r.Relative.Mean)
		pctLine(&b, "Maximum relative error:", r.Relative.Max)
		pctLine(&b, "99.9th percentile relative:", r.Relative.P999)
	} else {
		fmt.Fprintf(&b, "%-*s%s\n", labelWidth, "Relative error bounds:", "not applicable (every exact value is zero)")
	}

	b.WriteString("\nRECOMMENDED UPPER BOUND\n")
	fmt.Fprintf(&b, "Recommended bound (99.9th percentile): %.6f\n", r.RecommendedBound)
	fmt.Fprintf(&b, "99.9%% of observed approximations have absolute error <= %.6f\n", r.RecommendedBound)

	return b.String()
}

func line(b *strings.Builder, label string, v float64) {
	fmt.Fprintf(b, "%-*s%.6f\n", labelWidth, label, v)
}

func pctLine(b *strings.Builder, label string, v float64) {
	fmt.Fprintf(b, "%-*s%.6f (%.2f%%)\n", labelWidth, label, v, v*100)
}

func confidenceLabel(c float64) string {
	pct := math.Round(c*100*1e6) / 1e6
	return strconv.FormatFloat(pct, 'f', -1, 64) + "% confidence upper bound:"
}
