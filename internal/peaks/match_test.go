package peaks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func peaksAt(shifts ...float64) []Peak {
	out := make([]Peak, len(shifts))
	for i, s := range shifts {
		out[i] = Peak{Shift: s, Height: 1.0}
	}
	return out
}

func TestMatchBasic(t *testing.T) {
	predicted := peaksAt(1.0, 2.5, 4.0)
	observed := peaksAt(1.02, 4.05)

	m := Match(predicted, observed, 0.05, TieHigherIntensity)

	if len(m.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %+v", len(m.Pairs), m.Pairs)
	}
	if m.Pairs[0].Predicted.Shift != 1.0 || m.Pairs[0].Observed.Shift != 1.02 {
		t.Errorf("first pair wrong: %+v", m.Pairs[0])
	}
	if m.Pairs[1].Predicted.Shift != 4.0 || m.Pairs[1].Observed.Shift != 4.05 {
		t.Errorf("second pair wrong: %+v", m.Pairs[1])
	}
	if len(m.Missing) != 1 || m.Missing[0].Shift != 2.5 {
		t.Errorf("expected 2.5 missing, got %+v", m.Missing)
	}
	if len(m.Extra) != 0 {
		t.Errorf("expected no extra peaks, got %+v", m.Extra)
	}
}

func TestMatchRoundTrip(t *testing.T) {
	predicted := peaksAt(0.5, 1.0, 1.1, 3.0, 7.2)
	observed := peaksAt(0.52, 1.05, 2.9, 5.0, 8.8)

	m := Match(predicted, observed, 0.2, TieHigherIntensity)

	// Every predicted peak in exactly one of {matched, missing}
	if got := len(m.Pairs) + len(m.Missing); got != len(predicted) {
		t.Errorf("predicted peaks not partitioned: %d pairs + %d missing != %d",
			len(m.Pairs), len(m.Missing), len(predicted))
	}
	// Every observed peak in exactly one of {matched, extra}
	if got := len(m.Pairs) + len(m.Extra); got != len(observed) {
		t.Errorf("observed peaks not partitioned: %d pairs + %d extra != %d",
			len(m.Pairs), len(m.Extra), len(observed))
	}
	// No observed peak used twice
	seen := make(map[float64]bool)
	for _, p := range m.Pairs {
		if seen[p.Observed.Shift] {
			t.Errorf("observed peak %g claimed twice", p.Observed.Shift)
		}
		seen[p.Observed.Shift] = true
	}
}

func TestMatchDeterministic(t *testing.T) {
	predicted := peaksAt(1.0, 1.2, 1.4, 6.0)
	observed := peaksAt(1.1, 1.3, 5.9, 6.1)

	first := Match(predicted, observed, 0.15, TieHigherIntensity)
	for i := 0; i < 10; i++ {
		again := Match(predicted, observed, 0.15, TieHigherIntensity)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("matching not deterministic (-want +got):\n%s", diff)
		}
	}
}

func TestMatchTieBreak(t *testing.T) {
	predicted := peaksAt(2.0)
	observed := []Peak{
		{Shift: 1.9, Height: 0.5},
		{Shift: 2.1, Height: 0.9},
	}

	m := Match(predicted, observed, 0.2, TieHigherIntensity)
	if len(m.Pairs) != 1 || m.Pairs[0].Observed.Shift != 2.1 {
		t.Errorf("intensity tie-break: expected 2.1 chosen, got %+v", m.Pairs)
	}

	m = Match(predicted, observed, 0.2, TieLowerShift)
	if len(m.Pairs) != 1 || m.Pairs[0].Observed.Shift != 1.9 {
		t.Errorf("shift tie-break: expected 1.9 chosen, got %+v", m.Pairs)
	}
}

func TestMatchNearestWins(t *testing.T) {
	predicted := peaksAt(2.0)
	observed := []Peak{
		{Shift: 1.95, Height: 0.1}, // nearer but weaker
		{Shift: 2.10, Height: 5.0},
	}
	m := Match(predicted, observed, 0.2, TieHigherIntensity)
	if len(m.Pairs) != 1 || m.Pairs[0].Observed.Shift != 1.95 {
		t.Errorf("nearest must win over more intense: %+v", m.Pairs)
	}
}

func TestMatchRatio(t *testing.T) {
	m := Matching{
		Pairs:   []Pair{{}, {}},
		Missing: peaksAt(1.0, 2.0),
	}
	if got := m.MatchRatio(); got != 0.5 {
		t.Errorf("expected ratio 0.5, got %g", got)
	}
	if got := (Matching{}).MatchRatio(); got != 0 {
		t.Errorf("empty matching ratio must be 0, got %g", got)
	}
}

func TestMatchEmptyInputs(t *testing.T) {
	m := Match(nil, peaksAt(1.0), 0.1, TieHigherIntensity)
	if len(m.Extra) != 1 || len(m.Pairs) != 0 {
		t.Errorf("all observed must be extra: %+v", m)
	}
	m = Match(peaksAt(1.0), nil, 0.1, TieHigherIntensity)
	if len(m.Missing) != 1 || len(m.Pairs) != 0 {
		t.Errorf("all predicted must be missing: %+v", m)
	}
}
