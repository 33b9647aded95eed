package report

import (
	"fmt"
	"io"
	"time"

	"github.com/nmrqc/nmrqc/internal/peaks"
	"github.com/nmrqc/nmrqc/internal/qc"
)

// Comparison holds everything the standalone comparison report needs.
type Comparison struct {
	PredictedFile string
	ObservedFile  string
	Matching      peaks.Matching
	MinMatchRatio float64
	// Extra QC results for the observed spectrum, in check order.
	// May be empty when the checks were skipped.
	Checks []qc.Result
	// Generated timestamp; zero value means time.Now at write time.
	Generated time.Time
}

// Pass reports whether the comparison meets the match-ratio threshold.
func (c Comparison) Pass() bool {
	return c.Matching.MatchRatio() >= c.MinMatchRatio
}

// WriteComparison renders the textual QC report for one predicted vs
// observed spectrum pair.
func WriteComparison(w io.Writer, c Comparison) error {
	generated := c.Generated
	if generated.IsZero() {
		generated = time.Now()
	}
	m := c.Matching
	nPred := len(m.Pairs) + len(m.Missing)

	fmt.Fprintf(w, "QC report: %s vs %s\n", c.ObservedFile, c.PredictedFile)
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Generated: %s\n\n", generated.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(w, "Predicted peaks: %d\n", nPred)
	fmt.Fprintf(w, "Observed peaks: %d\n", len(m.Pairs)+len(m.Extra))
	fmt.Fprintf(w, "Matched: %d of %d predicted (%.1f%%)\n",
		len(m.Pairs), nPred, 100*m.MatchRatio())
	fmt.Fprintf(w, "Missing predicted peaks: %d\n", len(m.Missing))
	fmt.Fprintf(w, "Unexpected observed peaks: %d\n", len(m.Extra))

	for _, p := range m.Missing {
		fmt.Fprintf(w, "  missing: %.3f ppm\n", p.Shift)
	}
	for _, p := range m.Extra {
		fmt.Fprintf(w, "  extra:   %.3f ppm\n", p.Shift)
	}

	if len(c.Checks) > 0 {
		fmt.Fprintln(w)
		for _, r := range c.Checks {
			if r.Detail != "" {
				fmt.Fprintf(w, "%s: %s (%s; %s)\n", r.Check, formatMetric(r.Metric), r.Status, r.Detail)
			} else {
				fmt.Fprintf(w, "%s: %s (%s)\n", r.Check, formatMetric(r.Metric), r.Status)
			}
		}
	}

	verdict := "PASS"
	if !c.Pass() {
		verdict = "CHECK"
	}
	fmt.Fprintf(w, "\nPeak match QC: %s (ratio %.2f, threshold %.2f)\n",
		verdict, c.Matching.MatchRatio(), c.MinMatchRatio)
	return nil
}
