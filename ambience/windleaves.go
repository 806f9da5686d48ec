package ambience

import (
	"math"
	"math/rand"

	"github.com/azu-azu/tsukisound/dsp"
)

// WindLeaves builds the wind-and-rustle bed from FFT band masks: a broad
// 200-1500 Hz wind layer under 120 short high-band leaf events. The result
// is mono; the asset duplicates it to both channels.
func WindLeaves(sampleRate, duration float64, rng *rand.Rand) []float64 {
	n := int(duration * sampleRate)

	wind := dsp.BandMask(dsp.WhiteNoise(rng, n), sampleRate, 200, 1500, 0.1)
	// The swell LFO runs in normalized buffer time, one tenth of a cycle
	// across the whole loop.
	for i := range wind {
		u := float64(i) / float64(n-1)
		wind[i] *= 1.0 + 0.4*math.Sin(twoPi*0.1*u)
	}
	dsp.Normalize(wind, 0.3)

	leaves := make([]float64, n)
	for e := 0; e < 120; e++ {
		dur := uniform(rng, 0.15, 0.35)
		ln := int(dur * sampleRate)
		if ln < 2 || ln >= n {
			continue
		}
		start := rng.Intn(n - ln + 1)
		chunk := dsp.BandMask(dsp.WhiteNoise(rng, ln), sampleRate, 3000, 9000, 0)
		// Width factor stands in for pan in the mono mix.
		width := 0.5 + uniform(rng, -0.5, 0.5)
		for i := range chunk {
			u := float64(i) / float64(ln-1)
			leaves[start+i] += chunk[i] * math.Exp(-6*u) * width
		}
	}
	dsp.Normalize(leaves, 0.2)

	out := make([]float64, n)
	for i := range out {
		out[i] = wind[i] + leaves[i]
	}
	dsp.Normalize(out, 1.0)
	return out
}
