package ambience

import (
	"math"
	"math/rand"

	"github.com/azu-azu/tsukisound/dsp"
)

// Pink renders a pink-noise bed with the 16-source Voss-McCartney
// construction, normalized to full scale with 100 ms loop fades.
func Pink(sampleRate, duration float64, rng *rand.Rand) []float64 {
	n := int(duration * sampleRate)
	x := dsp.PinkNoise(rng, n, 16)
	return linearEdges(x, sampleRate, 0.1)
}

// Ocean shapes white noise with three overlapping slow swells, then rolls
// off everything above 2 kHz for the muffled underwater character.
func Ocean(sampleRate, duration float64, rng *rand.Rand) []float64 {
	n := int(duration * sampleRate)
	x := dsp.WhiteNoise(rng, n)
	for i := range x {
		t := float64(i) / sampleRate
		env := 0.5 +
			0.3*math.Sin(twoPi*0.15*t) +
			0.2*math.Sin(twoPi*0.08*t) +
			0.15*math.Sin(twoPi*0.25*t)
		if env < 0 {
			env = 0
		} else if env > 1 {
			env = 1
		}
		x[i] *= env
	}
	x = dsp.Filter(x,
		dsp.NewLowPass(sampleRate, 2000, butterQ4a),
		dsp.NewLowPass(sampleRate, 2000, butterQ4b))
	dsp.Normalize(x, 1.0)
	return linearEdges(x, sampleRate, 0.2)
}

// Rain layers heavy drops, mid-band patter, and high hiss, with a 20 s
// intensity cycle over the top.
func Rain(sampleRate, duration float64, rng *rand.Rand) []float64 {
	n := int(duration * sampleRate)

	drops := dsp.WhiteNoise(rng, n)
	for i := range drops {
		drops[i] *= 0.3
	}
	drops = dsp.Filter(drops, dsp.NewLowPass(sampleRate, 800, butterQ2))

	patter := dsp.WhiteNoise(rng, n)
	for i := range patter {
		patter[i] *= 0.4
	}
	patter = dsp.Filter(patter, dsp.NewBandPass(sampleRate, 1000, 4000))

	hiss := dsp.WhiteNoise(rng, n)
	for i := range hiss {
		hiss[i] *= 0.2
	}
	hiss = dsp.Filter(hiss, dsp.NewHighPass(sampleRate, 3000, butterQ2))

	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		intensity := 0.8 + 0.2*math.Sin(twoPi*0.05*t)
		out[i] = (drops[i] + patter[i] + hiss[i]) * intensity
	}
	dsp.Normalize(out, 1.0)
	return linearEdges(out, sampleRate, 0.2)
}

// Forest mixes a breathing wind layer, rustling leaves, and sparse
// Hann-windowed chirps. LFO rates scale with the requested duration so a
// short render breathes the same number of times as a long one.
func Forest(sampleRate, duration float64, rng *rand.Rand) []float64 {
	n := int(duration * sampleRate)

	wind := dsp.Filter(dsp.WhiteNoise(rng, n), dsp.NewLowPass(sampleRate, 1000, butterQ2))
	leaves := dsp.Filter(dsp.WhiteNoise(rng, n), dsp.NewHighPass(sampleRate, 3000, butterQ2))
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		wind[i] *= 0.6 + 0.4*math.Sin(twoPi*(2/duration)*t)
		leaves[i] *= 0.3 + 0.2*math.Sin(twoPi*(6/duration)*t)
	}

	birds := make([]float64, n)
	maxStart := n - int(0.2*sampleRate)
	for c := 0; c < int(duration/3); c++ {
		if maxStart <= 0 {
			break
		}
		start := rng.Intn(maxStart)
		minLen := int(0.1 * sampleRate)
		length := minLen + rng.Intn(int(0.25*sampleRate)-minLen)
		freq := uniform(rng, 2000, 4000)
		for i := 0; i < length && start+i < n; i++ {
			tc := float64(i) / sampleRate
			hann := 0.5 - 0.5*math.Cos(twoPi*float64(i)/float64(length-1))
			birds[start+i] += 0.5 * math.Sin(twoPi*freq*tc) * hann
		}
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5*wind[i] + 0.3*leaves[i] + 0.2*birds[i]
	}
	dsp.Normalize(out, 1.0)
	return linearEdges(out, sampleRate, 0.2)
}
