package qc

import (
	"math"
	"strings"
)

// Row is the aggregated QC outcome for one spectrum.
type Row struct {
	SpectrumID string
	Results    map[string]Result // keyed by check name
	Overall    Status
	Incomplete bool     // true if any check errored for this spectrum
	Failed     []string // names of checks with CHECK status
}

// Table is the QC summary over a batch of spectra: one row per
// spectrum, one column per check, plus the overall verdict.
type Table struct {
	Checks []string // column order, first-appearance order of checks
	Rows   []Row    // first-appearance order of spectra
}

// Summarize groups results by spectrum and computes the per-spectrum
// verdict. Overall is the logical AND over the completed checks; a row
// with an errored check is marked incomplete instead of failed.
// Summarize is a pure function of its input.
func Summarize(results []Result) Table {
	var t Table
	checkSeen := make(map[string]bool)
	rowIdx := make(map[string]int)

	for _, r := range results {
		if !checkSeen[r.Check] {
			checkSeen[r.Check] = true
			t.Checks = append(t.Checks, r.Check)
		}
		i, ok := rowIdx[r.SpectrumID]
		if !ok {
			i = len(t.Rows)
			rowIdx[r.SpectrumID] = i
			t.Rows = append(t.Rows, Row{
				SpectrumID: r.SpectrumID,
				Results:    make(map[string]Result),
			})
		}
		t.Rows[i].Results[r.Check] = r
	}

	for i := range t.Rows {
		row := &t.Rows[i]
		row.Overall = StatusPass
		for _, name := range t.Checks {
			r, ok := row.Results[name]
			if !ok {
				continue
			}
			switch r.Status {
			case StatusError:
				row.Incomplete = true
			case StatusCheck:
				row.Failed = append(row.Failed, name)
				row.Overall = StatusCheck
			}
		}
		if row.Incomplete && row.Overall == StatusPass {
			// Don't claim a clean pass when a check never ran
			row.Overall = StatusError
		}
	}
	return t
}

// FailedList renders the failing check names of a row, "None" if clean.
func (r Row) FailedList() string {
	if len(r.Failed) == 0 {
		return "None"
	}
	return strings.Join(r.Failed, ", ")
}

// MetricStats are descriptive statistics of one check's metric across
// the batch. Errored and NaN metrics are excluded.
type MetricStats struct {
	Check string
	N     int
	Mean  float64
	Min   float64
	Max   float64
}

// Stats computes per-check metric statistics over the table.
func (t Table) Stats() []MetricStats {
	var out []MetricStats
	for _, name := range t.Checks {
		st := MetricStats{Check: name, Min: math.Inf(1), Max: math.Inf(-1)}
		sum := 0.0
		for _, row := range t.Rows {
			r, ok := row.Results[name]
			if !ok || r.Status == StatusError || math.IsNaN(r.Metric) || math.IsInf(r.Metric, 0) {
				continue
			}
			st.N++
			sum += r.Metric
			if r.Metric < st.Min {
				st.Min = r.Metric
			}
			if r.Metric > st.Max {
				st.Max = r.Metric
			}
		}
		if st.N > 0 {
			st.Mean = sum / float64(st.N)
			out = append(out, st)
		}
	}
	return out
}
