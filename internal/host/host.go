// Package host is the collaborator contract between the pure qc checks
// and whatever pipeline drives them. A Runner evaluates every
// registered check over every spectrum and collects Results into a
// session-scoped Store; a failing check is recorded and logged but
// never aborts the batch. The CLI is the only in-repo host, but the
// package boundary keeps the checks free of any runner specifics.
package host

import (
	"math"

	"go.uber.org/zap"

	"github.com/nmrqc/nmrqc/internal/qc"
	"github.com/nmrqc/nmrqc/internal/spectrum"
)

// Store collects QC results for the duration of one session.
// Results are append-only and kept in insertion order.
type Store struct {
	results []qc.Result
}

func NewStore() *Store { return &Store{} }

// Add appends a result to the session.
func (st *Store) Add(r qc.Result) {
	st.results = append(st.results, r)
}

// All returns the collected results in insertion order.
// The returned slice is shared; callers must not modify it.
func (st *Store) All() []qc.Result { return st.results }

// BySpectrum returns the results recorded for one spectrum.
func (st *Store) BySpectrum(id string) []qc.Result {
	var out []qc.Result
	for _, r := range st.results {
		if r.SpectrumID == id {
			out = append(out, r)
		}
	}
	return out
}

// Runner drives a fixed set of checks over spectra.
type Runner struct {
	checks []qc.Check
	store  *Store
	log    *zap.SugaredLogger
}

// NewRunner builds a runner over the given checks. A nil logger
// disables logging.
func NewRunner(checks []qc.Check, store *Store, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{checks: checks, store: store, log: log}
}

// Run evaluates every check on every spectrum. Errors from individual
// checks are converted to error-status results so the summary can mark
// the row incomplete; they never stop the remaining work.
func (r *Runner) Run(spectra []spectrum.Spectrum) {
	for _, s := range spectra {
		for _, c := range r.checks {
			res, err := c.Evaluate(s)
			if err != nil {
				r.log.Warnw("check failed",
					"check", c.Name(),
					"spectrum", s.ID,
					"error", err,
				)
				if res.Status != qc.StatusError {
					res = qc.Result{
						Check:      c.Name(),
						SpectrumID: s.ID,
						Metric:     math.NaN(),
						Status:     qc.StatusError,
						Detail:     err.Error(),
					}
				}
				if res.Detail == "" {
					res.Detail = err.Error()
				}
			} else {
				r.log.Debugw("check done",
					"check", c.Name(),
					"spectrum", s.ID,
					"metric", res.Metric,
					"status", res.Status,
				)
			}
			r.store.Add(res)
		}
	}
}

// Summary aggregates the stored results.
func (r *Runner) Summary() qc.Table {
	return qc.Summarize(r.store.All())
}
