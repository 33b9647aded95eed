package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmrqc/nmrqc/internal/host"
	"github.com/nmrqc/nmrqc/internal/qc"
	"github.com/nmrqc/nmrqc/internal/report"
	"github.com/nmrqc/nmrqc/internal/spectrum"
)

var (
	checkFormat string
	checkOut    string
)

var checkCmd = &cobra.Command{
	Use:   "check [spectrum files...]",
	Short: "Run the QC checks over one or more spectra",
	Long: `Run the baseline, SNR, linewidth and water-suppression checks over
each spectrum file and print the aggregated summary table.

A check that cannot be computed for a spectrum (for example because the
requested ppm window holds no data) marks that row as incomplete; the
remaining checks and spectra still run.

Examples:
  # Check a batch of spectra with default thresholds
  nmrqc check topspin/*.csv

  # Custom thresholds, machine-readable output
  nmrqc check -c qc.yaml --format tsv sample.csv > summary.tsv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "Summary output format: text, tsv or json")
	checkCmd.Flags().StringVarP(&checkOut, "out", "o", "", "Write the summary to a file instead of stdout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	var spectra []spectrum.Spectrum
	for _, path := range args {
		s, err := spectrum.LoadTable(path, spectrum.ReadOptions{
			MinShift: cfg.Compare.ShiftRange.Min,
			MaxShift: cfg.Compare.ShiftRange.Max,
		})
		if err != nil {
			return err
		}
		log.Debugw("spectrum loaded", "id", s.ID, "points", s.Len())
		spectra = append(spectra, s)
	}

	store := host.NewStore()
	runner := host.NewRunner(cfg.BuildChecks(), store, log)
	runner.Run(spectra)
	table := runner.Summary()

	out := io.Writer(os.Stdout)
	if checkOut != "" {
		f, err := os.Create(checkOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := writeSummary(out, table, checkFormat); err != nil {
		return err
	}

	for _, row := range table.Rows {
		if row.Incomplete {
			log.Warnw("incomplete QC row", "spectrum", row.SpectrumID)
		}
	}
	return nil
}

func writeSummary(w io.Writer, t qc.Table, format string) error {
	switch format {
	case "text":
		return report.WriteSummaryText(w, t)
	case "tsv":
		return report.WriteSummaryTSV(w, t)
	case "json":
		return report.WriteSummaryJSON(w, t)
	default:
		return fmt.Errorf("unknown summary format %q, must be text, tsv or json", format)
	}
}
