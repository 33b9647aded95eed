package peaks

import (
	"errors"
	"math"
	"testing"

	"github.com/nmrqc/nmrqc/internal/spectrum"
)

// lorentzian builds a spectrum with a single Lorentzian line of the
// given half width at half maximum, centered at 0 ppm.
func lorentzian(hwhm float64) (spectrum.Spectrum, int) {
	const spacing = 0.0005
	s := spectrum.Spectrum{}
	center := -1
	i := 0
	for x := -0.2; x <= 0.2+spacing/2; x += spacing {
		y := hwhm * hwhm / (x*x + hwhm*hwhm)
		s.Points = append(s.Points, spectrum.Point{Shift: x, Intensity: y})
		if math.Abs(x) < spacing/2 {
			center = i
		}
		i++
	}
	return s, center
}

func TestFWHM(t *testing.T) {
	const hwhm = 0.01
	s, center := lorentzian(hwhm)
	if center < 0 {
		t.Fatal("no center sample")
	}

	width, err := FWHM(s, center)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 2 * hwhm
	if math.Abs(width-want)/want > 0.05 {
		t.Errorf("expected FWHM near %g, got %g", want, width)
	}
}

func TestFWHMNoCrossing(t *testing.T) {
	// Intensity never drops to half max inside the window
	s := spectrum.Spectrum{Points: []spectrum.Point{
		{Shift: 0, Intensity: 0.9},
		{Shift: 0.1, Intensity: 1.0},
		{Shift: 0.2, Intensity: 0.9},
	}}
	_, err := FWHM(s, 1)
	if !errors.Is(err, ErrNoWidth) {
		t.Errorf("expected ErrNoWidth, got %v", err)
	}
}

func TestRefineFWHM(t *testing.T) {
	const hwhm = 0.01
	s, center := lorentzian(hwhm)

	initial, err := FWHM(s, center)
	if err != nil {
		t.Fatal(err)
	}
	refined := RefineFWHM(s, center, initial)
	want := 2 * hwhm
	if math.Abs(refined-want)/want > 0.1 {
		t.Errorf("expected refined FWHM near %g, got %g", want, refined)
	}
}

func TestRefineFWHMFallback(t *testing.T) {
	s, center := lorentzian(0.01)
	if got := RefineFWHM(s, center, 0); got != 0 {
		t.Errorf("non-positive initial must be returned unchanged, got %g", got)
	}
	if got := RefineFWHM(s, -1, 0.02); got != 0.02 {
		t.Errorf("bad index must fall back to initial, got %g", got)
	}
}

func TestAsymmetry(t *testing.T) {
	s, center := lorentzian(0.01)
	asym := Asymmetry(s, center)
	if math.Abs(asym-1.0) > 1e-9 {
		t.Errorf("symmetric peak must give ratio 1, got %g", asym)
	}

	// A secondary hump on one side lowers nothing: side maxima include
	// the peak itself, so the ratio stays 1 unless the apex is off to
	// one side of the index.
	skewed := spectrum.Spectrum{Points: []spectrum.Point{
		{Shift: 0, Intensity: 0.2},
		{Shift: 1, Intensity: 0.6}, // evaluated index
		{Shift: 2, Intensity: 1.0}, // true apex to the right
		{Shift: 3, Intensity: 0.1},
	}}
	asym = Asymmetry(skewed, 1)
	if math.Abs(asym-0.6) > 1e-9 {
		t.Errorf("expected ratio 0.6, got %g", asym)
	}
}
