package host

import (
	"errors"
	"testing"

	"github.com/nmrqc/nmrqc/internal/qc"
	"github.com/nmrqc/nmrqc/internal/spectrum"
)

// stubCheck returns a canned result, or fails when err is set.
type stubCheck struct {
	name   string
	status qc.Status
	err    error
}

func (c stubCheck) Name() string { return c.name }

func (c stubCheck) Evaluate(s spectrum.Spectrum) (qc.Result, error) {
	if c.err != nil {
		return qc.Result{Check: c.name, SpectrumID: s.ID, Status: qc.StatusError}, c.err
	}
	return qc.Result{Check: c.name, SpectrumID: s.ID, Metric: 1, Status: c.status}, nil
}

func spectra(ids ...string) []spectrum.Spectrum {
	out := make([]spectrum.Spectrum, len(ids))
	for i, id := range ids {
		out[i] = spectrum.Spectrum{ID: id, Points: []spectrum.Point{{Shift: 1, Intensity: 1}}}
	}
	return out
}

func TestRunnerRunsAllChecks(t *testing.T) {
	store := NewStore()
	runner := NewRunner([]qc.Check{
		stubCheck{name: "a", status: qc.StatusPass},
		stubCheck{name: "b", status: qc.StatusCheck},
	}, store, nil)

	runner.Run(spectra("s1", "s2"))

	if got := len(store.All()); got != 4 {
		t.Fatalf("expected 4 results, got %d", got)
	}
	if got := len(store.BySpectrum("s1")); got != 2 {
		t.Errorf("expected 2 results for s1, got %d", got)
	}
}

func TestRunnerContinuesAfterError(t *testing.T) {
	store := NewStore()
	runner := NewRunner([]qc.Check{
		stubCheck{name: "broken", err: errors.New("window empty")},
		stubCheck{name: "fine", status: qc.StatusPass},
	}, store, nil)

	runner.Run(spectra("s1"))

	results := store.BySpectrum("s1")
	if len(results) != 2 {
		t.Fatalf("error in one check must not stop the next, got %d results", len(results))
	}
	if results[0].Status != qc.StatusError {
		t.Errorf("expected ERROR result recorded, got %s", results[0].Status)
	}
	if results[0].Detail == "" {
		t.Errorf("error result must carry a detail message")
	}
	if results[1].Status != qc.StatusPass {
		t.Errorf("second check must still pass, got %s", results[1].Status)
	}

	table := runner.Summary()
	if len(table.Rows) != 1 || !table.Rows[0].Incomplete {
		t.Errorf("summary must mark the row incomplete: %+v", table.Rows)
	}
}
