// Package config loads the nmrqc YAML configuration file and maps it
// onto the option structs of the qc and peaks packages. Missing fields
// fall back to the documented defaults, so an absent or empty file is
// equivalent to running with defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nmrqc/nmrqc/internal/peaks"
	"github.com/nmrqc/nmrqc/internal/qc"
)

// ErrConfig reports an invalid configuration value. Configuration
// problems are fatal at startup.
var ErrConfig = errors.New("invalid configuration")

// Defaults for the standalone comparison pipeline.
const (
	DefaultDetectMinHeight  = 0.1
	DefaultDetectSeparation = 1
	DefaultMatchTolerance   = 0.2
	DefaultMinMatchRatio    = 0.5
)

// Window is a chemical shift range in ppm. Fields map to the YAML keys.
type Window struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (w Window) qc() qc.Window { return qc.Window{Min: w.Min, Max: w.Max} }

// Config is the top-level nmrqc configuration. Fields map 1:1 to
// nmrqc.example.yaml.
type Config struct {
	Checks  ChecksConfig  `yaml:"checks"`
	Compare CompareConfig `yaml:"compare"`
}

// ChecksConfig holds the per-check thresholds and windows.
type ChecksConfig struct {
	Baseline struct {
		NoiseWindow Window  `yaml:"noise_window"`
		MaxSD       float64 `yaml:"max_sd"`
	} `yaml:"baseline"`

	SNR struct {
		SignalWindow Window  `yaml:"signal_window"`
		NoiseWindow  Window  `yaml:"noise_window"`
		MinRatio     float64 `yaml:"min_ratio"`
	} `yaml:"snr"`

	Linewidth struct {
		RefWindow       Window  `yaml:"reference_window"`
		MaxWidthHz      float64 `yaml:"max_width_hz"`
		SpectrometerMHz float64 `yaml:"spectrometer_mhz"`
		AsymmetryTol    float64 `yaml:"asymmetry_tolerance"`
	} `yaml:"linewidth"`

	Water struct {
		WaterWindow  Window  `yaml:"water_window"`
		MaxElevation float64 `yaml:"max_elevation"`
		EdgeFrac     float64 `yaml:"edge_fraction"`
	} `yaml:"water"`
}

// CompareConfig holds the standalone comparison settings.
type CompareConfig struct {
	// MinHeight is the minimum normalized intensity for a detected peak.
	MinHeight float64 `yaml:"min_height"`
	// MinProminence suppresses noise-driven local maxima.
	MinProminence float64 `yaml:"min_prominence"`
	// MinSeparation is the minimum distance between peaks, in points.
	MinSeparation int `yaml:"min_separation"`
	// Tolerance is the peak matching tolerance in ppm.
	Tolerance float64 `yaml:"tolerance_ppm"`
	// TieBreak resolves equidistant matches: "intensity" (default)
	// prefers the higher observed peak, "shift" the lower shift.
	TieBreak string `yaml:"tie_break"`
	// MinMatchRatio is the matched/predicted fraction needed to pass.
	MinMatchRatio float64 `yaml:"min_match_ratio"`
	// ShiftRange clips loaded spectra to a plausible ppm range.
	ShiftRange Window `yaml:"shift_range"`
}

// Load reads and parses the YAML config file at path. An empty path
// returns the defaults. Validation failures are fatal.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with the documented defaults.
func defaults() *Config {
	cfg := &Config{}

	b := qc.DefaultBaselineConfig()
	cfg.Checks.Baseline.NoiseWindow = Window{Min: b.NoiseWindow.Min, Max: b.NoiseWindow.Max}
	cfg.Checks.Baseline.MaxSD = b.MaxSD

	s := qc.DefaultSNRConfig()
	cfg.Checks.SNR.SignalWindow = Window{Min: s.SignalWindow.Min, Max: s.SignalWindow.Max}
	cfg.Checks.SNR.NoiseWindow = Window{Min: s.NoiseWindow.Min, Max: s.NoiseWindow.Max}
	cfg.Checks.SNR.MinRatio = s.MinRatio

	l := qc.DefaultLinewidthConfig()
	cfg.Checks.Linewidth.RefWindow = Window{Min: l.RefWindow.Min, Max: l.RefWindow.Max}
	cfg.Checks.Linewidth.MaxWidthHz = l.MaxWidthHz
	cfg.Checks.Linewidth.SpectrometerMHz = l.SpectrometerMHz
	cfg.Checks.Linewidth.AsymmetryTol = l.AsymmetryTol

	w := qc.DefaultWaterConfig()
	cfg.Checks.Water.WaterWindow = Window{Min: w.WaterWindow.Min, Max: w.WaterWindow.Max}
	cfg.Checks.Water.MaxElevation = w.MaxElevation
	cfg.Checks.Water.EdgeFrac = w.EdgeFrac

	cfg.Compare = CompareConfig{
		MinHeight:     DefaultDetectMinHeight,
		MinSeparation: DefaultDetectSeparation,
		Tolerance:     DefaultMatchTolerance,
		TieBreak:      "intensity",
		MinMatchRatio: DefaultMinMatchRatio,
	}
	return cfg
}

// validate checks scalar ranges and window orientation.
func validate(cfg *Config) error {
	windows := map[string]Window{
		"checks.baseline.noise_window":      cfg.Checks.Baseline.NoiseWindow,
		"checks.snr.signal_window":          cfg.Checks.SNR.SignalWindow,
		"checks.snr.noise_window":           cfg.Checks.SNR.NoiseWindow,
		"checks.linewidth.reference_window": cfg.Checks.Linewidth.RefWindow,
		"checks.water.water_window":         cfg.Checks.Water.WaterWindow,
	}
	for name, w := range windows {
		if w.Min >= w.Max {
			return fmt.Errorf("%w: %s: min %g must be below max %g", ErrConfig, name, w.Min, w.Max)
		}
	}
	if cfg.Checks.Baseline.MaxSD <= 0 {
		return fmt.Errorf("%w: checks.baseline.max_sd must be positive", ErrConfig)
	}
	if cfg.Checks.SNR.MinRatio <= 0 {
		return fmt.Errorf("%w: checks.snr.min_ratio must be positive", ErrConfig)
	}
	if cfg.Checks.Linewidth.MaxWidthHz <= 0 {
		return fmt.Errorf("%w: checks.linewidth.max_width_hz must be positive", ErrConfig)
	}
	if cfg.Checks.Linewidth.SpectrometerMHz <= 0 {
		return fmt.Errorf("%w: checks.linewidth.spectrometer_mhz must be positive", ErrConfig)
	}
	if tol := cfg.Checks.Linewidth.AsymmetryTol; tol < 0 || tol >= 1 {
		return fmt.Errorf("%w: checks.linewidth.asymmetry_tolerance must be in [0,1)", ErrConfig)
	}
	if cfg.Checks.Water.MaxElevation <= 0 {
		return fmt.Errorf("%w: checks.water.max_elevation must be positive", ErrConfig)
	}
	if f := cfg.Checks.Water.EdgeFrac; f <= 0 || f >= 0.5 {
		return fmt.Errorf("%w: checks.water.edge_fraction must be in (0,0.5)", ErrConfig)
	}
	if cfg.Compare.Tolerance <= 0 {
		return fmt.Errorf("%w: compare.tolerance_ppm must be positive", ErrConfig)
	}
	if r := cfg.Compare.MinMatchRatio; r < 0 || r > 1 {
		return fmt.Errorf("%w: compare.min_match_ratio must be in [0,1]", ErrConfig)
	}
	switch cfg.Compare.TieBreak {
	case "", "intensity", "shift":
	default:
		return fmt.Errorf("%w: compare.tie_break must be \"intensity\" or \"shift\"", ErrConfig)
	}
	return nil
}

// BaselineConfig maps the loaded values onto the qc options.
func (c *Config) BaselineConfig() qc.BaselineConfig {
	return qc.BaselineConfig{
		NoiseWindow: c.Checks.Baseline.NoiseWindow.qc(),
		MaxSD:       c.Checks.Baseline.MaxSD,
	}
}

// SNRConfig maps the loaded values onto the qc options.
func (c *Config) SNRConfig() qc.SNRConfig {
	return qc.SNRConfig{
		SignalWindow: c.Checks.SNR.SignalWindow.qc(),
		NoiseWindow:  c.Checks.SNR.NoiseWindow.qc(),
		MinRatio:     c.Checks.SNR.MinRatio,
	}
}

// LinewidthConfig maps the loaded values onto the qc options.
// Height and prominence fractions are not exposed in YAML; the
// defaults have proven robust for reference peak isolation.
func (c *Config) LinewidthConfig() qc.LinewidthConfig {
	out := qc.DefaultLinewidthConfig()
	out.RefWindow = c.Checks.Linewidth.RefWindow.qc()
	out.MaxWidthHz = c.Checks.Linewidth.MaxWidthHz
	out.SpectrometerMHz = c.Checks.Linewidth.SpectrometerMHz
	out.AsymmetryTol = c.Checks.Linewidth.AsymmetryTol
	return out
}

// WaterConfig maps the loaded values onto the qc options.
func (c *Config) WaterConfig() qc.WaterConfig {
	return qc.WaterConfig{
		WaterWindow:  c.Checks.Water.WaterWindow.qc(),
		MaxElevation: c.Checks.Water.MaxElevation,
		EdgeFrac:     c.Checks.Water.EdgeFrac,
	}
}

// BuildChecks builds the full check set in canonical order.
func (c *Config) BuildChecks() []qc.Check {
	return []qc.Check{
		qc.NewBaseline(c.BaselineConfig()),
		qc.NewSNR(c.SNRConfig()),
		qc.NewLinewidth(c.LinewidthConfig()),
		qc.NewWaterSuppression(c.WaterConfig()),
	}
}

// DetectOptions maps the comparison settings onto the peak detector.
func (c *Config) DetectOptions() peaks.DetectOptions {
	return peaks.DetectOptions{
		MinHeight:     c.Compare.MinHeight,
		MinProminence: c.Compare.MinProminence,
		MinSeparation: c.Compare.MinSeparation,
	}
}

// TieBreak maps the configured policy string onto the peaks constant.
func (c *Config) TieBreak() peaks.TieBreak {
	if c.Compare.TieBreak == "shift" {
		return peaks.TieLowerShift
	}
	return peaks.TieHigherIntensity
}
