package qc

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/nmrqc/nmrqc/internal/spectrum"
)

// Water suppression check defaults. A residual water hump raises the
// baseline in the middle of the water window relative to its edges.
const (
	DefaultWaterMin          = 4.7
	DefaultWaterMax          = 5.0
	DefaultWaterMaxElevation = 0.8
	DefaultWaterEdgeFrac     = 0.15
)

// WaterConfig configures the water-suppression check.
type WaterConfig struct {
	WaterWindow  Window
	MaxElevation float64 // max allowed middle/edge baseline ratio
	EdgeFrac     float64 // fraction of window points used as each edge
}

// DefaultWaterConfig returns the documented defaults.
func DefaultWaterConfig() WaterConfig {
	return WaterConfig{
		WaterWindow:  Window{Min: DefaultWaterMin, Max: DefaultWaterMax},
		MaxElevation: DefaultWaterMaxElevation,
		EdgeFrac:     DefaultWaterEdgeFrac,
	}
}

// WaterSuppression checks the residual water signal by comparing the
// baseline level in the middle of the water window to the level at its
// edges. The baseline per segment is the 25th percentile of absolute
// intensity, so genuine metabolite peaks inside the window are ignored.
type WaterSuppression struct {
	cfg WaterConfig
}

func NewWaterSuppression(cfg WaterConfig) *WaterSuppression {
	return &WaterSuppression{cfg: cfg}
}

func (c *WaterSuppression) Name() string { return "Water" }

func (c *WaterSuppression) Evaluate(s spectrum.Spectrum) (Result, error) {
	res := Result{Check: c.Name(), SpectrumID: s.ID, Threshold: c.cfg.MaxElevation}

	water := s.Normalize().Window(c.cfg.WaterWindow.Min, c.cfg.WaterWindow.Max)
	n := water.Len()
	edge := int(float64(n) * c.cfg.EdgeFrac)
	if n == 0 || edge < 1 || n <= 2*edge {
		res.Status = StatusError
		return res, fmt.Errorf("water %s: %.2f-%.2f ppm too narrow for edge comparison: %w",
			s.ID, c.cfg.WaterWindow.Min, c.cfg.WaterWindow.Max, ErrMissingRegion)
	}

	y := water.Intensities()
	left := quartileBaseline(y[:edge])
	right := quartileBaseline(y[n-edge:])
	edgeBaseline := (left + right) / 2
	middleBaseline := quartileBaseline(y[edge : n-edge])

	var elevation float64
	switch {
	case edgeBaseline > 0:
		elevation = middleBaseline / edgeBaseline
	case middleBaseline > 0:
		elevation = math.Inf(1)
	default:
		elevation = 1.0
	}
	res.Metric = elevation
	if elevation > c.cfg.MaxElevation {
		res.Status = StatusCheck
		res.Detail = "residual water hump"
	} else {
		res.Status = StatusPass
	}
	return res, nil
}

// quartileBaseline estimates the baseline level of a segment as the
// 25th percentile of absolute intensity.
func quartileBaseline(y []float64) float64 {
	abs := make([]float64, len(y))
	for i, v := range y {
		abs[i] = math.Abs(v)
	}
	sort.Float64s(abs)
	return stat.Quantile(0.25, stat.LinInterp, abs, nil)
}
