// Package spectrum holds the 1D NMR spectrum data model and the
// delimited-text readers that produce it.
package spectrum

import (
	"errors"
	"math"
	"sort"
)

var ErrMalformedInput = errors.New("malformed or empty spectrum input")

// Point is a single sample of the spectrum: chemical shift (ppm) and
// intensity in arbitrary units.
type Point struct {
	Shift     float64
	Intensity float64
}

// Spectrum is an ordered sequence of points, sorted by ascending
// chemical shift. Spectra are treated as read-only once loaded;
// operations that change the data return a new Spectrum.
type Spectrum struct {
	ID     string
	Points []Point
}

func (s Spectrum) Len() int { return len(s.Points) }

// Shifts returns the chemical shift axis as a slice.
func (s Spectrum) Shifts() []float64 {
	x := make([]float64, len(s.Points))
	for i, p := range s.Points {
		x[i] = p.Shift
	}
	return x
}

// Intensities returns the intensity values as a slice.
func (s Spectrum) Intensities() []float64 {
	y := make([]float64, len(s.Points))
	for i, p := range s.Points {
		y[i] = p.Intensity
	}
	return y
}

// MaxIntensity returns the highest intensity in the spectrum,
// or 0 for an empty spectrum.
func (s Spectrum) MaxIntensity() float64 {
	max := 0.0
	for i, p := range s.Points {
		if i == 0 || p.Intensity > max {
			max = p.Intensity
		}
	}
	return max
}

// Normalize returns a copy of the spectrum with intensities scaled to a
// maximum of 1. A spectrum with non-positive maximum is returned unchanged,
// since there is nothing meaningful to scale by.
func (s Spectrum) Normalize() Spectrum {
	max := s.MaxIntensity()
	if max <= 0 {
		return s
	}
	out := Spectrum{ID: s.ID, Points: make([]Point, len(s.Points))}
	for i, p := range s.Points {
		out.Points[i] = Point{Shift: p.Shift, Intensity: p.Intensity / max}
	}
	return out
}

// Window returns the sub-spectrum with min <= shift <= max.
// Points must be sorted by shift, which the loaders guarantee.
// The returned spectrum shares the underlying point slice.
func (s Spectrum) Window(min, max float64) Spectrum {
	if min > max {
		min, max = max, min
	}
	i1 := sort.Search(len(s.Points), func(i int) bool { return s.Points[i].Shift >= min })
	i2 := sort.Search(len(s.Points), func(i int) bool { return s.Points[i].Shift > max })
	return Spectrum{ID: s.ID, Points: s.Points[i1:i2]}
}

// Spacing returns the typical distance between adjacent shift values.
// Used to convert point counts to ppm and back.
func (s Spectrum) Spacing() float64 {
	if len(s.Points) < 2 {
		return 0
	}
	return math.Abs(s.Points[len(s.Points)-1].Shift-s.Points[0].Shift) / float64(len(s.Points)-1)
}

// sortByShift orders points by ascending chemical shift in place.
func sortByShift(points []Point) {
	sort.Slice(points, func(i, j int) bool { return points[i].Shift < points[j].Shift })
}
