// Package peaks provides peak detection, linewidth measurement and
// predicted-vs-observed peak matching for 1D NMR spectra.
package peaks

import (
	"sort"

	"github.com/nmrqc/nmrqc/internal/spectrum"
)

// Peak is a local intensity maximum in a spectrum.
type Peak struct {
	Index  int     // index of the maximum in the source spectrum
	Shift  float64 // chemical shift (ppm)
	Height float64
	Width  float64 // FWHM in ppm, 0 if not measured
}

// DetectOptions control which local maxima count as peaks.
type DetectOptions struct {
	// MinHeight is the minimum intensity for a candidate maximum.
	MinHeight float64
	// MinProminence is the minimum prominence, ie how far the peak
	// rises above the higher of its two surrounding bases.
	MinProminence float64
	// MinSeparation is the minimum distance in points between
	// accepted peaks. When two peaks are closer, the lower one is
	// suppressed. 0 or 1 disables the constraint.
	MinSeparation int
}

// Detect scans the spectrum for local maxima satisfying opts.
// Peaks are returned ordered by ascending chemical shift.
// The scan is deterministic for a given spectrum and options.
func Detect(s spectrum.Spectrum, opts DetectOptions) []Peak {
	y := s.Intensities()
	cands := localMaxima(y)

	accepted := make([]Peak, 0, len(cands))
	for _, i := range cands {
		if y[i] < opts.MinHeight {
			continue
		}
		if opts.MinProminence > 0 && prominence(y, i) < opts.MinProminence {
			continue
		}
		accepted = append(accepted, Peak{
			Index:  i,
			Shift:  s.Points[i].Shift,
			Height: y[i],
		})
	}

	if opts.MinSeparation > 1 {
		accepted = enforceSeparation(accepted, opts.MinSeparation)
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Shift < accepted[j].Shift })
	return accepted
}

// localMaxima returns indices of strict local maxima. For a flat-topped
// peak the middle sample of the plateau is reported.
func localMaxima(y []float64) []int {
	var maxima []int
	for i := 1; i < len(y)-1; i++ {
		if y[i] <= y[i-1] {
			continue
		}
		// Walk over a possible plateau to the right
		j := i
		for j < len(y)-1 && y[j+1] == y[i] {
			j++
		}
		if j == len(y)-1 {
			break
		}
		if y[j+1] < y[i] {
			maxima = append(maxima, (i+j)/2)
		}
		i = j
	}
	return maxima
}

// prominence is the height of the peak above the higher of its two
// bases. A base is the lowest sample between the peak and the nearest
// higher sample (or the spectrum edge) on that side.
func prominence(y []float64, peak int) float64 {
	leftBase := y[peak]
	for i := peak - 1; i >= 0; i-- {
		if y[i] > y[peak] {
			break
		}
		if y[i] < leftBase {
			leftBase = y[i]
		}
	}
	rightBase := y[peak]
	for i := peak + 1; i < len(y); i++ {
		if y[i] > y[peak] {
			break
		}
		if y[i] < rightBase {
			rightBase = y[i]
		}
	}
	base := leftBase
	if rightBase > base {
		base = rightBase
	}
	return y[peak] - base
}

// enforceSeparation keeps the most intense peak within each group of
// peaks closer than minSep points, the way scientific peak pickers
// implement a minimum-distance constraint.
func enforceSeparation(peaks []Peak, minSep int) []Peak {
	// Consider peaks from most to least intense; a peak survives if no
	// already-kept peak is within minSep points.
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if peaks[order[a]].Height != peaks[order[b]].Height {
			return peaks[order[a]].Height > peaks[order[b]].Height
		}
		return peaks[order[a]].Index < peaks[order[b]].Index
	})

	keep := make([]bool, len(peaks))
	for _, i := range order {
		ok := true
		for j := range peaks {
			if keep[j] && abs(peaks[j].Index-peaks[i].Index) < minSep {
				ok = false
				break
			}
		}
		keep[i] = ok
	}

	out := make([]Peak, 0, len(peaks))
	for i, p := range peaks {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
