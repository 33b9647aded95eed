package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nmrqc/nmrqc/internal/peaks"
	"github.com/nmrqc/nmrqc/internal/qc"
	"github.com/nmrqc/nmrqc/internal/report"
	"github.com/nmrqc/nmrqc/internal/spectrum"
)

var (
	predictedFile string
	observedFile  string
	compareOutDir string
	skipChecks    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a predicted spectrum against an observed one",
	Long: `Load a predicted and an observed spectrum from delimited text, clean
and normalize both, detect peaks, match them within the configured ppm
tolerance and write an overlay plot plus a textual QC report.

Outputs, written to the output directory:
  <predicted>_cleaned.tsv       cleaned predicted spectrum
  <predicted>_overlay.png       overlaid spectra with matched peaks marked
  qc_report_<predicted>.txt     match counts, QC metrics and verdict

Examples:
  nmrqc compare --predicted predictions/lactate.tsv --observed topspin/sample_lactate.csv
  nmrqc compare -p lactate.tsv -s sample.csv -d QC_reports --no-checks`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&predictedFile, "predicted", "p", "", "Predicted spectrum file (required)")
	compareCmd.Flags().StringVarP(&observedFile, "observed", "s", "", "Observed (sample) spectrum file (required)")
	compareCmd.Flags().StringVarP(&compareOutDir, "out-dir", "d", ".", "Directory for the plot, report and cleaned spectrum")
	compareCmd.Flags().BoolVar(&skipChecks, "no-checks", false, "Skip the window QC checks on the observed spectrum")

	compareCmd.MarkFlagRequired("predicted")
	compareCmd.MarkFlagRequired("observed")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	readOpts := spectrum.ReadOptions{
		MinShift: cfg.Compare.ShiftRange.Min,
		MaxShift: cfg.Compare.ShiftRange.Max,
	}
	predicted, err := spectrum.LoadTable(predictedFile, readOpts)
	if err != nil {
		return err
	}
	observed, err := spectrum.LoadTable(observedFile, readOpts)
	if err != nil {
		return err
	}
	log.Debugw("spectra loaded",
		"predicted_points", predicted.Len(),
		"observed_points", observed.Len(),
	)

	predicted = predicted.Normalize()
	observed = observed.Normalize()

	detectOpts := cfg.DetectOptions()
	predPeaks := peaks.Detect(predicted, detectOpts)
	obsPeaks := peaks.Detect(observed, detectOpts)
	log.Infow("peaks detected", "predicted", len(predPeaks), "observed", len(obsPeaks))

	matching := peaks.Match(predPeaks, obsPeaks, cfg.Compare.Tolerance, cfg.TieBreak())
	log.Infow("peaks matched",
		"matched", len(matching.Pairs),
		"missing", len(matching.Missing),
		"extra", len(matching.Extra),
	)

	var checkResults []qc.Result
	if !skipChecks {
		for _, c := range cfg.BuildChecks() {
			res, err := c.Evaluate(observed)
			if err != nil {
				log.Warnw("check failed", "check", c.Name(), "error", err)
			}
			checkResults = append(checkResults, res)
		}
	}

	if err := os.MkdirAll(compareOutDir, 0755); err != nil {
		return err
	}
	base := predicted.ID

	cleanedPath := filepath.Join(compareOutDir, base+"_cleaned.tsv")
	if err := spectrum.SaveTable(cleanedPath, predicted); err != nil {
		return fmt.Errorf("write cleaned spectrum: %w", err)
	}

	plotPath := filepath.Join(compareOutDir, base+"_overlay.png")
	if err := report.Overlay(observed, predicted, matching, plotPath); err != nil {
		return err
	}

	comparison := report.Comparison{
		PredictedFile: filepath.Base(predictedFile),
		ObservedFile:  filepath.Base(observedFile),
		Matching:      matching,
		MinMatchRatio: cfg.Compare.MinMatchRatio,
		Checks:        checkResults,
	}
	reportPath := filepath.Join(compareOutDir, "qc_report_"+base+".txt")
	f, err := os.Create(reportPath)
	if err != nil {
		return err
	}
	if err := report.WriteComparison(f, comparison); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	// Echo the report so a terminal run shows the verdict directly
	if !quiet {
		if err := report.WriteComparison(os.Stdout, comparison); err != nil {
			return err
		}
	}
	log.Infow("comparison written",
		"plot", plotPath,
		"report", reportPath,
		"cleaned", cleanedPath,
	)
	return nil
}
