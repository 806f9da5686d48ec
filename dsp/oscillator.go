package dsp

import (
	"math"
	"math/rand"
)

const twoPi = 2.0 * math.Pi

// Sine evaluates a unit sine at absolute time t.
func Sine(freq, t float64) float64 {
	return math.Sin(twoPi * freq * t)
}

// DetunedUnison averages three sines at f, f+detune and f-detune. With a
// small detune (0.1–0.2 Hz) the result thickens like a chorus without
// audible beating.
func DetunedUnison(freq, detune, t float64) float64 {
	v1 := math.Sin(twoPi * freq * t)
	v2 := math.Sin(twoPi * (freq + detune) * t)
	v3 := math.Sin(twoPi * (freq - detune) * t)
	return (v1 + v2 + v3) / 3.0
}

// Partial is one entry of an additive harmonic series.
type Partial struct {
	Mult float64 // frequency multiplier relative to the fundamental
	Amp  float64 // relative amplitude
}

// HarmonicVoice is an additive oscillator for sustained wind/organ timbres.
// Phase is wrapped to [0,1) per sample before the vibrato offset is applied,
// which keeps precision over minutes-long sustained tones.
type HarmonicVoice struct {
	Partials     []Partial
	VibratoRate  float64 // Hz
	VibratoDepth float64 // fraction of a cycle
}

// Sample returns the voice value at absolute time t for the given fundamental.
// The output is normalized by the partial count.
func (v HarmonicVoice) Sample(freq, t float64) float64 {
	if len(v.Partials) == 0 {
		return 0
	}
	vibrato := math.Sin(twoPi*v.VibratoRate*t) * v.VibratoDepth
	sum := 0.0
	for _, p := range v.Partials {
		rawPhase := freq * p.Mult * t
		wrapped := rawPhase - math.Floor(rawPhase)
		sum += math.Sin(twoPi*(wrapped+vibrato)) * p.Amp
	}
	return sum / float64(len(v.Partials))
}

// Sustained-voice presets shared by the tempo-stretched pieces.
var (
	OrganPartials = []Partial{
		{1, 1.0}, {2, 0.45}, {3, 0.25}, {4, 0.12}, {6, 0.03},
	}
	TrumpetPartials = []Partial{
		{1, 1.0}, {2, 0.55}, {3, 0.35}, {4, 0.2}, {5, 0.12}, {6, 0.06},
	}
	// Clarinet keeps only odd partials.
	ClarinetPartials = []Partial{
		{1, 1.0}, {3, 0.33}, {5, 0.2}, {7, 0.14}, {9, 0.11},
	}
)

// GuitarVoice renders a plucked acoustic string: a harmonic stack whose upper
// partials decay faster, slight inharmonicity, a low body-resonance sine, and
// a burst of pick noise at the onset.
type GuitarVoice struct {
	Brightness float64 // 1.0 = full; lower values soften the upper partials
}

var guitarPartials = []Partial{
	{1, 1.00}, {2, 0.50}, {3, 0.35}, {4, 0.25},
	{5, 0.15}, {6, 0.10}, {7, 0.06}, {8, 0.03},
}

// Render fills a waveform for the local time axis tLocal (seconds since note
// onset). rng feeds the pluck transient; pass a per-run generator for
// reproducible output.
func (v GuitarVoice) Render(freq float64, tLocal []float64, rng *rand.Rand) []float64 {
	brightness := v.Brightness
	if brightness <= 0 {
		brightness = 1.0
	}
	out := make([]float64, len(tLocal))
	for _, p := range guitarPartials {
		decayRate := 1.0 + (p.Mult-1.0)*0.4
		// Strings are not perfectly harmonic; partials stretch with h².
		actualFreq := freq * p.Mult * (1.0 + 0.0003*p.Mult*p.Mult)
		for i, t := range tLocal {
			env := math.Exp(-t * decayRate * 0.8)
			out[i] += p.Amp * brightness * math.Sin(twoPi*actualFreq*t) * env
		}
	}
	bodyFreq := math.Min(freq*0.5, 150.0)
	for i, t := range tLocal {
		body := 0.08 * brightness * math.Sin(twoPi*bodyFreq*t) * math.Exp(-t*1.5)
		pluck := rng.NormFloat64() * 0.03 * brightness * math.Exp(-t*50.0)
		out[i] = (out[i] + body + pluck) / 1.8
	}
	return out
}

// MusicBoxVoice renders the metallic bell tone of a music-box tine: a bright
// harmonic stack plus two inharmonic partials, with the shimmer dying faster
// than the fundamental.
type MusicBoxVoice struct {
	Brightness float64
	Decay      float64 // seconds; the per-partial decays derive from this
}

var (
	musicBoxPartials = []Partial{
		{1, 1.00}, {2, 0.60}, {3, 0.35}, {4, 0.20}, {5, 0.10}, {6, 0.05},
	}
	musicBoxInharmonics = []Partial{
		{2.756, 0.08}, {4.112, 0.04},
	}
)

// Render fills a waveform for the local time axis tLocal.
func (v MusicBoxVoice) Render(freq float64, tLocal []float64) []float64 {
	brightness := v.Brightness
	if brightness <= 0 {
		brightness = 1.0
	}
	decay := v.Decay
	if decay <= 0 {
		decay = 2.5
	}
	out := make([]float64, len(tLocal))
	for _, p := range musicBoxPartials {
		amp := p.Amp / (1.0 + (p.Mult-1.0)*0.3)
		rate := (1.0 / decay) * (1.0 + (p.Mult-1.0)*0.5)
		for i, t := range tLocal {
			out[i] += amp * math.Sin(twoPi*freq*p.Mult*t) * math.Exp(-t*rate)
		}
	}
	for _, p := range musicBoxInharmonics {
		amp := p.Amp * brightness
		rate := (1.0 / decay) * 2.0
		for i, t := range tLocal {
			out[i] += amp * math.Sin(twoPi*freq*p.Mult*t) * math.Exp(-t*rate)
		}
	}
	for i := range out {
		out[i] /= 1.5
	}
	return out
}

// LinearSweep returns n instantaneous-frequency values interpolated from f0
// to f1.
func LinearSweep(f0, f1 float64, n int) []float64 {
	freqs := make([]float64, n)
	if n == 1 {
		freqs[0] = f0
		return freqs
	}
	step := (f1 - f0) / float64(n-1)
	for i := range freqs {
		freqs[i] = f0 + step*float64(i)
	}
	return freqs
}

// SweepPhase integrates an instantaneous-frequency track into a phase track
// (radians) by cumulative summation. Chirps must be synthesized from this
// integral: evaluating sin(2π·f(t)·t) directly produces phase jumps wherever
// the frequency changes.
func SweepPhase(freqs []float64, sampleRate float64) []float64 {
	phase := make([]float64, len(freqs))
	acc := 0.0
	for i, f := range freqs {
		acc += f
		phase[i] = twoPi * acc / sampleRate
	}
	return phase
}
