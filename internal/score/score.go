// Package score synthesizes pseudo-continuous confidence scores from binary
// classifier values.
//
// The output is explicitly synthetic: a positive indicator is jittered into
// the upper half of the score range, a non-positive one is drawn from the
// lower half, and everything is clamped to [0.05, 0.95]. The random source
// is injected so callers can seed it for deterministic tests; the package
// never draws from the global source.
package score

import (
	"math"
	"math/rand"
)

// Synthesizer converts binary classifier values into bounded continuous
// scores using an explicit random source.
type Synthesizer struct {
	rng *rand.Rand
}

// New creates a Synthesizer over the given random source.
func New(rng *rand.Rand) *Synthesizer {
	return &Synthesizer{rng: rng}
}

// NewSeeded creates a Synthesizer with a deterministic source for the seed.
func NewSeeded(seed int64) *Synthesizer {
	return New(rand.New(rand.NewSource(seed)))
}

// Score derives a continuous score from a classifier value v, where v > 0
// means positive. Positive values land in [0.5, 0.95] after uniform jitter
// of ±0.15; non-positive values are drawn uniformly from [0.05, 0.4].
func (s *Synthesizer) Score(v float64) float64 {
	if v > 0 {
		jittered := v + (s.rng.Float64()*0.3 - 0.15)
		return clamp(jittered, 0.5, 0.95)
	}
	draw := 0.05 + s.rng.Float64()*0.35
	return clamp(draw, 0.05, 0.5)
}

// Round3 rounds a score to three decimal places for output.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Percent converts a score to a whole percentage.
func Percent(v float64) int {
	return int(math.Round(v * 100))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
