// Package qc implements the quality-control checks for 1D NMR
// metabolomics spectra and the summary aggregation over their results.
//
// The checks are pure: they read a spectrum and a configuration struct
// and produce a Result. Collecting results and deciding what to do with
// a failing spectrum is the caller's business (see internal/host).
package qc

import (
	"errors"

	"github.com/nmrqc/nmrqc/internal/spectrum"
)

// ErrMissingRegion reports that a requested ppm window contains no
// usable data points. It is fatal for the check that needed the window,
// but must not abort the remaining checks.
var ErrMissingRegion = errors.New("ppm window contains no data points")

// Status is the outcome of a single check on a single spectrum.
type Status string

const (
	StatusPass  Status = "PASS"
	StatusCheck Status = "CHECK" // metric outside threshold, review needed
	StatusError Status = "ERROR" // check could not be computed
)

// Window is an inclusive chemical shift range in ppm.
type Window struct {
	Min float64
	Max float64
}

// Result is the immutable outcome of one check on one spectrum.
type Result struct {
	Check      string
	SpectrumID string
	Metric     float64
	Threshold  float64
	Status     Status
	Detail     string
}

// Passed reports whether the check passed outright.
func (r Result) Passed() bool { return r.Status == StatusPass }

// Check evaluates one quality metric over a spectrum.
// Evaluate returns a non-nil error only when the metric could not be
// computed at all; threshold violations are reported through Status.
type Check interface {
	Name() string
	Evaluate(s spectrum.Spectrum) (Result, error)
}
