// Package cmd provides the nmrqc CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nmrqc/nmrqc/internal/config"
)

var (
	// Persistent flags
	configPath string
	verbose    bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "nmrqc",
	Short: "Quality control for quantitative NMR metabolomics spectra",
	Long: `nmrqc runs quality-control checks over 1D NMR metabolomics spectra:
baseline flatness, signal-to-noise ratio, reference-peak (TSP) linewidth,
water-suppression quality and a summary report, plus a standalone
comparison of a predicted spectrum against an observed one.

Spectra are read from two-column delimited text files
(chemical shift in ppm, intensity). Thresholds and ppm windows have
documented defaults and can be overridden in a YAML config file.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file (defaults apply if omitted)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print per-check progress")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(compareCmd)
}

// loadConfig reads the config file named by --config, or defaults.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// newLogger builds the CLI logger honoring --verbose/--quiet.
func newLogger() *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	if quiet {
		level = zapcore.ErrorLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log.Sugar()
}
