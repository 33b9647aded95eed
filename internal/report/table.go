// Package report renders QC results: the summary table (text, TSV or
// JSON), the standalone comparison report and the overlay plot.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/nmrqc/nmrqc/internal/qc"
)

// WriteSummaryTSV writes the summary table as tab-separated values:
// one header row, one row per spectrum with metric and status columns
// per check, overall status and failing check names.
func WriteSummaryTSV(w io.Writer, t qc.Table) error {
	header := []string{"Spectrum"}
	for _, c := range t.Checks {
		header = append(header, c, c+"_status")
	}
	header = append(header, "Overall", "Failed")
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, row := range t.Rows {
		fields := []string{row.SpectrumID}
		for _, c := range t.Checks {
			r, ok := row.Results[c]
			if !ok {
				fields = append(fields, "", "")
				continue
			}
			fields = append(fields, formatMetric(r.Metric), string(r.Status))
		}
		overall := string(row.Overall)
		if row.Incomplete {
			overall = "INCOMPLETE"
		}
		fields = append(fields, overall, row.FailedList())
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummaryText writes a human-readable summary report: the aligned
// result table, per-check pass counts and per-metric statistics.
func WriteSummaryText(w io.Writer, t qc.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "Spectrum")
	for _, c := range t.Checks {
		fmt.Fprintf(tw, "\t%s\t", c)
	}
	fmt.Fprint(tw, "\tOverall\n")
	for _, row := range t.Rows {
		fmt.Fprint(tw, row.SpectrumID)
		for _, c := range t.Checks {
			r, ok := row.Results[c]
			if !ok {
				fmt.Fprint(tw, "\t-\t-")
				continue
			}
			fmt.Fprintf(tw, "\t%s\t%s", formatMetric(r.Metric), r.Status)
		}
		overall := string(row.Overall)
		if row.Incomplete {
			overall = "INCOMPLETE"
		}
		fmt.Fprintf(tw, "\t\t%s\n", overall)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	total := len(t.Rows)
	fmt.Fprintf(w, "\nTotal spectra: %d\n", total)
	for _, c := range t.Checks {
		pass := 0
		for _, row := range t.Rows {
			if r, ok := row.Results[c]; ok && r.Passed() {
				pass++
			}
		}
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(pass) / float64(total)
		}
		fmt.Fprintf(w, "%s: PASS %d/%d (%.1f%%)\n", c, pass, total, pct)
	}

	needAttention := 0
	for _, row := range t.Rows {
		if len(row.Failed) > 0 || row.Incomplete {
			if needAttention == 0 {
				fmt.Fprintf(w, "\nSpectra needing attention:\n")
			}
			needAttention++
			fmt.Fprintf(w, "  %s: %s\n", row.SpectrumID, row.FailedList())
		}
	}
	if needAttention == 0 {
		fmt.Fprintf(w, "\nAll spectra PASS.\n")
	}

	if stats := t.Stats(); len(stats) > 0 {
		fmt.Fprintf(w, "\nStatistics:\n")
		for _, st := range stats {
			fmt.Fprintf(w, "  %s: mean %.4g  min %.4g  max %.4g  (n=%d)\n",
				st.Check, st.Mean, st.Min, st.Max, st.N)
		}
	}
	return nil
}

// summaryJSON is the JSON shape of the summary output.
type summaryJSON struct {
	Checks []string         `json:"checks"`
	Rows   []summaryRowJSON `json:"rows"`
}

type summaryRowJSON struct {
	Spectrum   string                `json:"spectrum"`
	Results    map[string]resultJSON `json:"results"`
	Overall    string                `json:"overall"`
	Incomplete bool                  `json:"incomplete,omitempty"`
	Failed     []string              `json:"failed,omitempty"`
}

// resultJSON mirrors qc.Result with a nil metric where the value is not
// a finite number, since encoding/json rejects NaN and Inf.
type resultJSON struct {
	Metric    *float64 `json:"metric"`
	Threshold float64  `json:"threshold,omitempty"`
	Status    string   `json:"status"`
	Detail    string   `json:"detail,omitempty"`
}

func toResultJSON(r qc.Result) resultJSON {
	out := resultJSON{
		Threshold: r.Threshold,
		Status:    string(r.Status),
		Detail:    r.Detail,
	}
	if !math.IsNaN(r.Metric) && !math.IsInf(r.Metric, 0) {
		m := r.Metric
		out.Metric = &m
	}
	return out
}

// WriteSummaryJSON writes the summary table as indented JSON.
func WriteSummaryJSON(w io.Writer, t qc.Table) error {
	out := summaryJSON{Checks: t.Checks}
	for _, row := range t.Rows {
		results := make(map[string]resultJSON, len(row.Results))
		for name, r := range row.Results {
			results[name] = toResultJSON(r)
		}
		out.Rows = append(out.Rows, summaryRowJSON{
			Spectrum:   row.SpectrumID,
			Results:    results,
			Overall:    string(row.Overall),
			Incomplete: row.Incomplete,
			Failed:     row.Failed,
		})
	}
	e := json.NewEncoder(w)
	e.SetIndent(``, `  `) // Make output easier to read for humans
	return e.Encode(out)
}

func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", v)
}
