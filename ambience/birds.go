package ambience

import (
	"math"
	"math/rand"

	"github.com/azu-azu/tsukisound/dsp"
)

// birdCallCount is the number of chirps scattered across the loop.
const birdCallCount = 90

// ForestBirds scatters short frequency-sweep chirps across a stereo field,
// each with its own attack, decay, vibrato, and pan position.
func ForestBirds(sampleRate, duration float64, rng *rand.Rand) (left, right []float64) {
	n := int(duration * sampleRate)
	left = make([]float64, n)
	right = make([]float64, n)

	for c := 0; c < birdCallCount; c++ {
		chirp := birdChirp(sampleRate, rng)
		l, r := dsp.Pan(chirp, uniform(rng, -0.9, 0.9))
		maxStart := n - len(chirp) - 1
		if maxStart < 0 {
			continue
		}
		start := rng.Intn(maxStart + 1)
		for i := range chirp {
			left[start+i] += l[i]
			right[start+i] += r[i]
		}
	}

	peak := dsp.Peak(left)
	if p := dsp.Peak(right); p > peak {
		peak = p
	}
	if peak > 0 {
		scale := 1.0 / (peak * 1.1)
		for i := range left {
			left[i] *= scale
			right[i] *= scale
		}
	}
	return left, right
}

func birdChirp(sampleRate float64, rng *rand.Rand) []float64 {
	dur := uniform(rng, 0.12, 0.4)
	n := int(dur * sampleRate)

	fStart := uniform(rng, 2000, 3500)
	fEnd := fStart * uniform(rng, 0.7, 1.3)
	phase := dsp.SweepPhase(dsp.LinearSweep(fStart, fEnd, n), sampleRate)

	attackLen := int(float64(n) * uniform(rng, 0.05, 0.15))
	decaySpeed := uniform(rng, 2.5, 4.5)
	vibFreq := uniform(rng, 4.0, 8.0)
	vibDepth := uniform(rng, 0.01, 0.03)
	gain := uniform(rng, 0.2, 0.5)

	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		env := math.Exp(-decaySpeed * t / dur)
		if i < attackLen && attackLen > 1 {
			env *= float64(i) / float64(attackLen-1)
		}
		vib := 1.0 + math.Sin(twoPi*vibFreq*t)*vibDepth
		out[i] = math.Sin(phase[i]) * env * vib * gain
	}
	return out
}
