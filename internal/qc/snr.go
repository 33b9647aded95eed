package qc

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/nmrqc/nmrqc/internal/spectrum"
)

// SNR check defaults. The 0.5-4 ppm region carries the bulk of the
// metabolite signal; noise is estimated from the empty 10-11 ppm region.
const (
	DefaultSNRSignalMin = 0.5
	DefaultSNRSignalMax = 4.0
	DefaultSNRNoiseMin  = 10.0
	DefaultSNRNoiseMax  = 11.0
	DefaultSNRMinRatio  = 10.0
)

// SNRConfig configures the signal-to-noise check.
type SNRConfig struct {
	SignalWindow Window
	NoiseWindow  Window
	MinRatio     float64
}

// DefaultSNRConfig returns the documented defaults.
func DefaultSNRConfig() SNRConfig {
	return SNRConfig{
		SignalWindow: Window{Min: DefaultSNRSignalMin, Max: DefaultSNRSignalMax},
		NoiseWindow:  Window{Min: DefaultSNRNoiseMin, Max: DefaultSNRNoiseMax},
		MinRatio:     DefaultSNRMinRatio,
	}
}

// SNR computes max(signal window) / SD(noise window). The ratio is
// invariant under intensity scaling, so the raw and the normalized
// spectrum give the same outcome.
type SNR struct {
	cfg SNRConfig
}

func NewSNR(cfg SNRConfig) *SNR { return &SNR{cfg: cfg} }

func (c *SNR) Name() string { return "SNR" }

func (c *SNR) Evaluate(s spectrum.Spectrum) (Result, error) {
	res := Result{Check: c.Name(), SpectrumID: s.ID, Threshold: c.cfg.MinRatio}

	norm := s.Normalize()
	signal := norm.Window(c.cfg.SignalWindow.Min, c.cfg.SignalWindow.Max)
	noise := norm.Window(c.cfg.NoiseWindow.Min, c.cfg.NoiseWindow.Max)
	if signal.Len() == 0 {
		res.Status = StatusError
		return res, fmt.Errorf("snr %s: signal window: %w", s.ID, ErrMissingRegion)
	}
	if noise.Len() == 0 {
		res.Status = StatusError
		return res, fmt.Errorf("snr %s: noise window: %w", s.ID, ErrMissingRegion)
	}

	noiseSD := stat.PopStdDev(noise.Intensities(), nil)
	if noiseSD <= 0 {
		res.Status = StatusError
		return res, fmt.Errorf("snr %s: noise window has zero variance", s.ID)
	}

	snr := signal.MaxIntensity() / noiseSD
	res.Metric = snr
	if snr > c.cfg.MinRatio {
		res.Status = StatusPass
	} else {
		res.Status = StatusCheck
		res.Detail = "low signal-to-noise"
	}
	return res, nil
}
