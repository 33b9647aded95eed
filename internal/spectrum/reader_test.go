package spectrum

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTable(t *testing.T) {
	input := "ppm\tintensity\n" + // header, dropped
		"2.0\t5.0\n" +
		"1.0\t3.0\n" + // out of order, sorted on load
		"bad\t1.0\n" + // non-numeric, dropped
		"3.0\t\n" + // missing field, dropped
		"20.0\t1.0\n" + // outside shift range, dropped
		"0.5\t2.5\n"

	s, err := ReadTable(strings.NewReader(input), '\t', ReadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 points, got %d: %v", s.Len(), s.Points)
	}
	want := []float64{0.5, 1.0, 2.0}
	for i, p := range s.Points {
		if p.Shift != want[i] {
			t.Errorf("point %d: expected shift %g, got %g", i, want[i], p.Shift)
		}
	}
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable(strings.NewReader("a,b\nc,d\n"), ',', ReadOptions{})
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
}

func TestReadTableCustomRange(t *testing.T) {
	input := "-5.0,1.0\n1.0,2.0\n5.0,3.0\n"
	s, err := ReadTable(strings.NewReader(input), ',', ReadOptions{MinShift: -10, MaxShift: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 points inside custom range, got %d", s.Len())
	}
}

func TestLoadTableDelimiterFromExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "sample.csv")
	if err := os.WriteFile(csvPath, []byte("ppm,intensity\n1.0,2.0\n2.0,3.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadTable(csvPath, ReadOptions{})
	if err != nil {
		t.Fatalf("csv load: %v", err)
	}
	if s.ID != "sample" {
		t.Errorf("expected ID from base name, got %q", s.ID)
	}
	if s.Len() != 2 {
		t.Errorf("csv: expected 2 points, got %d", s.Len())
	}

	tsvPath := filepath.Join(dir, "pred.tsv")
	if err := os.WriteFile(tsvPath, []byte("1.0\t2.0\n2.0\t3.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err = LoadTable(tsvPath, ReadOptions{})
	if err != nil {
		t.Fatalf("tsv load: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("tsv: expected 2 points, got %d", s.Len())
	}
}

func TestWriteTableRoundTrip(t *testing.T) {
	s := Spectrum{Points: []Point{
		{Shift: 0.5, Intensity: 0.25},
		{Shift: 1.5, Intensity: 1.0},
	}}
	var buf bytes.Buffer
	if err := WriteTable(&buf, s, '\t'); err != nil {
		t.Fatal(err)
	}
	back, err := ReadTable(&buf, '\t', ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != s.Len() {
		t.Fatalf("round trip lost points: %d != %d", back.Len(), s.Len())
	}
	for i := range s.Points {
		if back.Points[i] != s.Points[i] {
			t.Errorf("point %d: %v != %v", i, back.Points[i], s.Points[i])
		}
	}
}
