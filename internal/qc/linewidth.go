package qc

import (
	"fmt"
	"math"

	"github.com/nmrqc/nmrqc/internal/peaks"
	"github.com/nmrqc/nmrqc/internal/spectrum"
)

// Linewidth check defaults. The reference window brackets the TSP
// singlet at 0 ppm. Height and prominence fractions keep satellite
// and noise maxima out of the reference peak search.
const (
	DefaultLinewidthRefMin       = -0.2
	DefaultLinewidthRefMax       = 0.2
	DefaultLinewidthMaxHz        = 1.5
	DefaultSpectrometerMHz       = 600.0
	DefaultLinewidthHeightFrac   = 0.8
	DefaultLinewidthPromFrac     = 0.3
	DefaultLinewidthAsymmetryTol = 0.15
)

// LinewidthConfig configures the reference-peak linewidth check.
type LinewidthConfig struct {
	RefWindow       Window
	MaxWidthHz      float64 // maximum allowed FWHM in Hz
	SpectrometerMHz float64 // converts ppm widths to Hz
	HeightFrac      float64 // min peak height, fraction of window max
	ProminenceFrac  float64 // min peak prominence, fraction of window max
	AsymmetryTol    float64 // allowed deviation of symmetry ratio from 1
}

// DefaultLinewidthConfig returns the documented defaults.
func DefaultLinewidthConfig() LinewidthConfig {
	return LinewidthConfig{
		RefWindow:       Window{Min: DefaultLinewidthRefMin, Max: DefaultLinewidthRefMax},
		MaxWidthHz:      DefaultLinewidthMaxHz,
		SpectrometerMHz: DefaultSpectrometerMHz,
		HeightFrac:      DefaultLinewidthHeightFrac,
		ProminenceFrac:  DefaultLinewidthPromFrac,
		AsymmetryTol:    DefaultLinewidthAsymmetryTol,
	}
}

// Linewidth locates the TSP reference peak and measures its full width
// at half maximum. A broad or asymmetric reference line points at poor
// shimming. The width estimate from interpolated half-height crossings
// is refined by a Lorentzian fit.
type Linewidth struct {
	cfg LinewidthConfig
}

func NewLinewidth(cfg LinewidthConfig) *Linewidth { return &Linewidth{cfg: cfg} }

func (c *Linewidth) Name() string { return "Linewidth" }

func (c *Linewidth) Evaluate(s spectrum.Spectrum) (Result, error) {
	res := Result{Check: c.Name(), SpectrumID: s.ID, Threshold: c.cfg.MaxWidthHz}

	ref := s.Normalize().Window(c.cfg.RefWindow.Min, c.cfg.RefWindow.Max)
	if ref.Len() == 0 {
		res.Status = StatusError
		return res, fmt.Errorf("linewidth %s: reference window: %w", s.ID, ErrMissingRegion)
	}

	max := ref.MaxIntensity()
	found := peaks.Detect(ref, peaks.DetectOptions{
		MinHeight:     max * c.cfg.HeightFrac,
		MinProminence: max * c.cfg.ProminenceFrac,
	})
	if len(found) != 1 {
		res.Status = StatusCheck
		res.Metric = math.NaN()
		res.Detail = fmt.Sprintf("expected 1 reference peak, found %d", len(found))
		return res, nil
	}
	peak := found[0]

	widthPPM, err := peaks.FWHM(ref, peak.Index)
	if err != nil {
		res.Status = StatusError
		return res, fmt.Errorf("linewidth %s: %w", s.ID, err)
	}
	widthPPM = peaks.RefineFWHM(ref, peak.Index, widthPPM)
	widthHz := widthPPM * c.cfg.SpectrometerMHz
	res.Metric = widthHz

	asym := peaks.Asymmetry(ref, peak.Index)
	switch {
	case widthHz > c.cfg.MaxWidthHz:
		res.Status = StatusCheck
		res.Detail = "reference line too broad"
	case !math.IsNaN(asym) && asym < 1.0-c.cfg.AsymmetryTol:
		res.Status = StatusCheck
		res.Detail = fmt.Sprintf("asymmetric reference peak (ratio %.2f)", asym)
	default:
		res.Status = StatusPass
	}
	return res, nil
}
