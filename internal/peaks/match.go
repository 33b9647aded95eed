package peaks

import (
	"math"
	"sort"
)

// TieBreak selects which observed peak wins when two candidates are
// equidistant from a predicted peak.
type TieBreak int

const (
	// TieHigherIntensity prefers the more intense observed peak.
	TieHigherIntensity TieBreak = iota
	// TieLowerShift prefers the peak at the lower chemical shift.
	TieLowerShift
)

// Pair is one predicted peak matched to one observed peak.
type Pair struct {
	Predicted Peak
	Observed  Peak
	Delta     float64 // |observed shift - predicted shift| in ppm
}

// Matching is the result of aligning a predicted peak list with an
// observed one. Every predicted peak ends up in exactly one of Pairs or
// Missing; every observed peak in exactly one of Pairs or Extra.
type Matching struct {
	Pairs   []Pair
	Missing []Peak // predicted peaks with no observed partner in tolerance
	Extra   []Peak // observed peaks not claimed by any predicted peak
}

// MatchRatio is the fraction of predicted peaks that found a partner.
// Returns 0 for an empty prediction.
func (m Matching) MatchRatio() float64 {
	n := len(m.Pairs) + len(m.Missing)
	if n == 0 {
		return 0
	}
	return float64(len(m.Pairs)) / float64(n)
}

// Match aligns predicted peaks with observed peaks. For each predicted
// peak (in ascending shift order) the nearest unclaimed observed peak
// within tolPPM is selected; equidistant candidates are resolved by tb.
// Each observed peak is claimed at most once. The result is
// deterministic for identical inputs.
func Match(predicted, observed []Peak, tolPPM float64, tb TieBreak) Matching {
	obs := make([]Peak, len(observed))
	copy(obs, observed)
	sort.Slice(obs, func(i, j int) bool { return obs[i].Shift < obs[j].Shift })

	pred := make([]Peak, len(predicted))
	copy(pred, predicted)
	sort.Slice(pred, func(i, j int) bool { return pred[i].Shift < pred[j].Shift })

	claimed := make([]bool, len(obs))
	var m Matching
	for _, p := range pred {
		best := bestCandidate(p, obs, claimed, tolPPM, tb)
		if best < 0 {
			m.Missing = append(m.Missing, p)
			continue
		}
		claimed[best] = true
		m.Pairs = append(m.Pairs, Pair{
			Predicted: p,
			Observed:  obs[best],
			Delta:     math.Abs(obs[best].Shift - p.Shift),
		})
	}
	for i, o := range obs {
		if !claimed[i] {
			m.Extra = append(m.Extra, o)
		}
	}
	return m
}

// bestCandidate returns the index in obs of the nearest unclaimed peak
// within tolPPM of p, or -1. obs must be sorted by shift.
func bestCandidate(p Peak, obs []Peak, claimed []bool, tolPPM float64, tb TieBreak) int {
	lo := p.Shift - tolPPM
	hi := p.Shift + tolPPM
	i1 := sort.Search(len(obs), func(i int) bool { return obs[i].Shift >= lo })
	i2 := sort.Search(len(obs), func(i int) bool { return obs[i].Shift > hi })

	best := -1
	bestDist := math.Inf(1)
	for i := i1; i < i2; i++ {
		if claimed[i] {
			continue
		}
		d := math.Abs(obs[i].Shift - p.Shift)
		switch {
		case d < bestDist:
			best = i
			bestDist = d
		case d == bestDist && best >= 0:
			if tb == TieHigherIntensity && obs[i].Height > obs[best].Height {
				best = i
			}
			// TieLowerShift: the earlier candidate already has the
			// lower shift, nothing to do.
		}
	}
	return best
}
