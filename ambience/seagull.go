package ambience

import (
	"math"
	"math/rand"

	"github.com/azu-azu/tsukisound/dsp"
)

// Seagull renders a single 0.8 s cry: a half-sine pitch swing from 1500 Hz
// up 1200 Hz and back, with second and third harmonics and a breathy noise
// layer under a raised half-sine envelope.
func Seagull(sampleRate float64, rng *rand.Rand) []float64 {
	const dur = 0.8
	n := int(dur * sampleRate)

	freqs := make([]float64, n)
	for i := range freqs {
		t := float64(i) / sampleRate
		freqs[i] = 1500 + 1200*math.Sin(math.Pi*t/dur)
	}
	phase := dsp.SweepPhase(freqs, sampleRate)

	out := make([]float64, n)
	for i := range out {
		tone := math.Sin(phase[i])
		harm := 0.5*math.Sin(phase[i]*2) + 0.25*math.Sin(phase[i]*3)
		noise := rng.NormFloat64() * 0.15
		env := math.Pow(math.Sin(math.Pi*float64(i)/float64(n-1)), 1.5)
		out[i] = (tone*0.6 + harm*0.4 + noise) * 0.8 * env
	}
	dsp.Normalize(out, 1.0)
	return out
}
