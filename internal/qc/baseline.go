package qc

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/nmrqc/nmrqc/internal/spectrum"
)

// Baseline check defaults. The 10-11 ppm region of a metabolomics
// spectrum is expected to be signal free, so any structure there is
// baseline distortion (sine wiggle, roll).
const (
	DefaultBaselineNoiseMin = 10.0
	DefaultBaselineNoiseMax = 11.0
	DefaultBaselineMaxSD    = 0.02
)

// BaselineConfig configures the baseline flatness check.
type BaselineConfig struct {
	NoiseWindow Window
	MaxSD       float64 // maximum allowed SD of normalized intensity
}

// DefaultBaselineConfig returns the documented defaults.
func DefaultBaselineConfig() BaselineConfig {
	return BaselineConfig{
		NoiseWindow: Window{Min: DefaultBaselineNoiseMin, Max: DefaultBaselineNoiseMax},
		MaxSD:       DefaultBaselineMaxSD,
	}
}

// Baseline checks baseline flatness: the standard deviation of the
// normalized intensity inside the noise window must stay below MaxSD.
type Baseline struct {
	cfg BaselineConfig
}

func NewBaseline(cfg BaselineConfig) *Baseline { return &Baseline{cfg: cfg} }

func (b *Baseline) Name() string { return "Baseline" }

func (b *Baseline) Evaluate(s spectrum.Spectrum) (Result, error) {
	res := Result{Check: b.Name(), SpectrumID: s.ID, Threshold: b.cfg.MaxSD}

	noise := s.Normalize().Window(b.cfg.NoiseWindow.Min, b.cfg.NoiseWindow.Max)
	if noise.Len() == 0 {
		res.Status = StatusError
		return res, fmt.Errorf("baseline %s: %.2f-%.2f ppm: %w",
			s.ID, b.cfg.NoiseWindow.Min, b.cfg.NoiseWindow.Max, ErrMissingRegion)
	}

	sd := stat.PopStdDev(noise.Intensities(), nil)
	res.Metric = sd
	if sd < b.cfg.MaxSD {
		res.Status = StatusPass
	} else {
		res.Status = StatusCheck
		res.Detail = "possible sine wiggle or baseline roll"
	}
	return res, nil
}
