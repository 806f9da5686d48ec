// Package ambience renders the looping environmental beds and one-shot
// accents: pink noise, ocean, rain, forest mixes, panned bird calls,
// bubble pops, tree chimes, and the seagull cry. Every generator takes an
// explicit *rand.Rand so a fixed seed reproduces the same samples.
package ambience

import (
	"math"
	"math/rand"
)

const twoPi = 2 * math.Pi

// Butterworth responses built from cascaded RBJ biquad sections.
// An order-2 stage uses q2; an order-4 lowpass cascades q4a then q4b.
const (
	butterQ2  = 0.7071067811865476
	butterQ4a = 0.5411961001461969
	butterQ4b = 1.3065629648763766
)

// linearEdges applies straight-line fade-in and fade-out of dur seconds
// each. The beds loop, so both edges must reach exactly zero.
func linearEdges(x []float64, sampleRate, dur float64) []float64 {
	n := int(dur * sampleRate)
	if n < 2 || len(x) < 2*n {
		return x
	}
	for i := 0; i < n; i++ {
		g := float64(i) / float64(n-1)
		x[i] *= g
		x[len(x)-1-i] *= g
	}
	return x
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
