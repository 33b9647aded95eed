package report

import (
	"strings"
	"testing"
	"time"

	"github.com/nmrqc/nmrqc/internal/peaks"
	"github.com/nmrqc/nmrqc/internal/qc"
)

func sampleComparison() Comparison {
	return Comparison{
		PredictedFile: "predicted.tsv",
		ObservedFile:  "sample.tsv",
		Matching: peaks.Matching{
			Pairs: []peaks.Pair{
				{Predicted: peaks.Peak{Shift: 1.0}, Observed: peaks.Peak{Shift: 1.02}, Delta: 0.02},
				{Predicted: peaks.Peak{Shift: 4.0}, Observed: peaks.Peak{Shift: 4.05}, Delta: 0.05},
			},
			Missing: []peaks.Peak{{Shift: 2.5}},
			Extra:   []peaks.Peak{{Shift: 7.2}},
		},
		MinMatchRatio: 0.5,
		Generated:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteComparison(t *testing.T) {
	var sb strings.Builder
	if err := WriteComparison(&sb, sampleComparison()); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		"QC report: sample.tsv vs predicted.tsv",
		"Generated: 2024-03-01 12:00:00",
		"Predicted peaks: 3",
		"Observed peaks: 3",
		"Matched: 2 of 3 predicted (66.7%)",
		"Missing predicted peaks: 1",
		"Unexpected observed peaks: 1",
		"missing: 2.500 ppm",
		"extra:   7.200 ppm",
		"Peak match QC: PASS (ratio 0.67, threshold 0.50)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestWriteComparisonFailVerdict(t *testing.T) {
	c := sampleComparison()
	c.MinMatchRatio = 0.9
	var sb strings.Builder
	if err := WriteComparison(&sb, c); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "Peak match QC: CHECK") {
		t.Errorf("2/3 matched must fail a 0.9 threshold:\n%s", sb.String())
	}
}

func TestWriteComparisonIncludesChecks(t *testing.T) {
	c := sampleComparison()
	c.Checks = []qc.Result{
		{Check: "Baseline", Metric: 0.011, Status: qc.StatusPass},
		{Check: "Water", Metric: 0.93, Status: qc.StatusCheck, Detail: "residual water hump"},
	}
	var sb strings.Builder
	if err := WriteComparison(&sb, c); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "Baseline: 0.011 (PASS)") {
		t.Errorf("missing check line:\n%s", out)
	}
	if !strings.Contains(out, "Water: 0.93 (CHECK; residual water hump)") {
		t.Errorf("missing detailed check line:\n%s", out)
	}
}

func TestComparisonPass(t *testing.T) {
	c := sampleComparison()
	if !c.Pass() {
		t.Errorf("ratio 0.67 must pass threshold 0.5")
	}
	c.MinMatchRatio = 0.67
	if c.Pass() {
		t.Errorf("ratio 2/3 is below 0.67")
	}
}
