package ambience

import (
	"math"
	"math/rand"

	"github.com/azu-azu/tsukisound/dsp"
)

// ChimeParams shapes a tree-chime shimmer: a cascade of metallic grains
// rising from 0.8x to 1.3x the base frequency.
type ChimeParams struct {
	Duration        float64 // total length in seconds
	Grains          int
	CascadeInterval float64 // seconds between grain onsets
	GrainDecay      float64 // exponential decay time constant
	BaseFreq        float64
	DetuneRange     float64 // total spread in Hz, centered on zero
}

// DefaultChime is the bright shimmer used for the melody accents.
func DefaultChime() ChimeParams {
	return ChimeParams{
		Duration:        2.0,
		Grains:          24,
		CascadeInterval: 0.020,
		GrainDecay:      1.2,
		BaseFreq:        6000,
		DetuneRange:     3.0,
	}
}

// chimeVariationFreqs are the base frequencies of the five stock
// variations, darkest to brightest.
var chimeVariationFreqs = []float64{5500, 5800, 6000, 6200, 6500} //nolint:gochecknoglobals

// TreeChime renders one chime, normalized to full scale.
func TreeChime(p ChimeParams, sampleRate float64, rng *rand.Rand) []float64 {
	n := int(p.Duration * sampleRate)
	out := make([]float64, n)

	detunes := make([]float64, p.Grains)
	phases := make([]float64, p.Grains)
	for i := range detunes {
		detunes[i] = (rng.Float64() - 0.5) * p.DetuneRange
	}
	for i := range phases {
		phases[i] = rng.Float64() * twoPi
	}

	for g := 0; g < p.Grains; g++ {
		onset := float64(g) * p.CascadeInterval
		start := int(onset * sampleRate)
		if start >= n {
			break
		}
		freq := p.BaseFreq*(0.8+float64(g)/float64(p.Grains-1)*0.5) + detunes[g]
		for i := start; i < n; i++ {
			gt := float64(i)/sampleRate - onset
			env := math.Exp(-gt / p.GrainDecay)
			out[i] += math.Sin(twoPi*freq*gt+phases[g]) * env
		}
	}

	dsp.Normalize(out, 1.0)
	return out
}

// ChimeVariations renders the five stock chimes, each from its own fixed
// seed so asset builds are reproducible.
func ChimeVariations(sampleRate float64) [][]float64 {
	out := make([][]float64, len(chimeVariationFreqs))
	for i, freq := range chimeVariationFreqs {
		p := DefaultChime()
		p.BaseFreq = freq
		rng := rand.New(rand.NewSource(int64(1000 + i*137)))
		out[i] = TreeChime(p, sampleRate, rng)
	}
	return out
}
