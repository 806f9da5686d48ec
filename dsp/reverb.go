package dsp

import (
	"fmt"
	"math"
)

// ReverbParams are the knobs of the Schroeder reverb. All presets share one
// algorithm; only these constants differ.
type ReverbParams struct {
	RoomSize float64 // comb delay scale; >0
	Damping  float64 // feedback low-pass amount; [0,1]
	Decay    float64 // comb feedback gain; [0,1) for stability
	Mix      float64 // wet fraction; [0,1]
	Predelay float64 // seconds of silence before the wet path; >=0
	// CombDelays overrides the base comb delay lengths (samples at
	// RoomSize 1). Zero value uses the hall tuning.
	CombDelays []int
}

// Base comb tunings, in samples at 48 kHz before room scaling. The music box
// uses shorter delays for a small-chamber feel.
var (
	hallCombDelays     = []int{1557, 1617, 1491, 1422}
	chamberCombDelays  = []int{1116, 1188, 1277, 1356}
	reverbAllpassDelay = []int{225, 556, 441, 341}
)

const allpassGain = 0.5

// Named presets as tuned for the original assets.
var (
	WarmRoomReverb = ReverbParams{RoomSize: 1.8, Damping: 0.55, Decay: 0.60, Mix: 0.30, Predelay: 0.020}
	CathedralReverb = ReverbParams{RoomSize: 2.2, Damping: 0.40, Decay: 0.85, Mix: 0.45, Predelay: 0.030}
	MusicBoxReverb = ReverbParams{
		RoomSize: 1.5, Damping: 0.55, Decay: 0.45, Mix: 0.22, Predelay: 0.012,
		CombDelays: chamberCombDelays,
	}
)

// Reverb is a Schroeder reverberator: a pre-delay, four parallel damped
// feedback combs, and four serial allpass diffusers. Each filter keeps only a
// ring buffer of its delay length, so memory stays O(delay) per filter
// regardless of signal length. The comb and allpass recurrences depend on
// their own past outputs, so processing is a strict per-sample loop:
// O(N · filters) for an N-sample buffer.
type Reverb struct {
	params     ReverbParams
	sampleRate float64
	combDelays []int
}

// NewReverb validates the parameters and returns a configured engine.
// Out-of-range feedback or damping would make the filter network grow without
// bound, so misconfiguration is rejected here rather than surfacing as Inf
// samples later.
func NewReverb(params ReverbParams, sampleRate float64) (*Reverb, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("reverb: sample rate must be positive, got %g", sampleRate)
	}
	if params.RoomSize <= 0 {
		return nil, fmt.Errorf("reverb: room size must be positive, got %g", params.RoomSize)
	}
	if params.Decay < 0 || params.Decay >= 1 {
		return nil, fmt.Errorf("reverb: decay must be in [0,1), got %g", params.Decay)
	}
	if params.Damping < 0 || params.Damping > 1 {
		return nil, fmt.Errorf("reverb: damping must be in [0,1], got %g", params.Damping)
	}
	if params.Mix < 0 || params.Mix > 1 {
		return nil, fmt.Errorf("reverb: mix must be in [0,1], got %g", params.Mix)
	}
	if params.Predelay < 0 {
		return nil, fmt.Errorf("reverb: predelay must be non-negative, got %g", params.Predelay)
	}
	base := params.CombDelays
	if len(base) == 0 {
		base = hallCombDelays
	}
	combs := make([]int, len(base))
	for i, d := range base {
		combs[i] = int(float64(d) * params.RoomSize)
		if combs[i] < 1 {
			combs[i] = 1
		}
	}
	return &Reverb{params: params, sampleRate: sampleRate, combDelays: combs}, nil
}

// Process runs dry through the reverb network and returns the dry/wet mix,
// trimmed back to len(dry). The input is not modified.
func (r *Reverb) Process(dry []float64) []float64 {
	predelaySamples := int(r.params.Predelay * r.sampleRate)
	delayed := make([]float64, predelaySamples+len(dry))
	copy(delayed[predelaySamples:], dry)

	combSum := make([]float64, len(delayed))
	for _, delay := range r.combDelays {
		comb := newCombFilter(delay, r.params.Decay, r.params.Damping)
		for i, x := range delayed {
			combSum[i] += comb.tick(x)
		}
	}
	inv := 1.0 / float64(len(r.combDelays))
	for i := range combSum {
		combSum[i] *= inv
	}

	wet := combSum
	for _, delay := range reverbAllpassDelay {
		ap := newAllpassFilter(delay, allpassGain)
		for i, x := range wet {
			wet[i] = ap.tick(x)
		}
	}

	out := make([]float64, len(dry))
	mix := r.params.Mix
	for i := range out {
		out[i] = dry[i]*(1-mix) + wet[i]*mix
	}
	return out
}

// combFilter is a feedback comb with a one-pole low-pass in its feedback
// path: y[i] = x[i] + decay·lp(y[i-delay]). The ring holds the last `delay`
// outputs.
type combFilter struct {
	ring    []float64
	idx     int
	primed  int
	decay   float64
	damping float64
	lpState float64
}

func newCombFilter(delay int, decay, damping float64) *combFilter {
	return &combFilter{ring: make([]float64, delay), decay: decay, damping: damping}
}

func (c *combFilter) tick(x float64) float64 {
	var y float64
	if c.primed < len(c.ring) {
		// Before the first echo arrives the comb is a pass-through.
		y = x
		c.primed++
	} else {
		past := c.ring[c.idx]
		c.lpState = past*(1.0-c.damping) + c.lpState*c.damping
		y = x + c.lpState*c.decay
	}
	c.ring[c.idx] = y
	c.idx++
	if c.idx == len(c.ring) {
		c.idx = 0
	}
	return y
}

// allpassFilter implements y[i] = -g·x[i] + x[i-delay] + g·y[i-delay],
// diffusing echoes in time while leaving the magnitude response flat.
type allpassFilter struct {
	inRing  []float64
	outRing []float64
	idx     int
	primed  int
	gain    float64
}

func newAllpassFilter(delay int, gain float64) *allpassFilter {
	return &allpassFilter{
		inRing:  make([]float64, delay),
		outRing: make([]float64, delay),
		gain:    gain,
	}
}

func (a *allpassFilter) tick(x float64) float64 {
	var y float64
	if a.primed < len(a.inRing) {
		y = x * (1.0 - a.gain)
		a.primed++
	} else {
		y = -a.gain*x + a.inRing[a.idx] + a.gain*a.outRing[a.idx]
	}
	a.inRing[a.idx] = x
	a.outRing[a.idx] = y
	a.idx++
	if a.idx == len(a.inRing) {
		a.idx = 0
	}
	return y
}

// CombDecayStep returns the expected amplitude ratio between successive
// echoes of a comb with the given decay and damping for a DC-ish signal.
// Exposed for stability checks in tests.
func CombDecayStep(decay, damping float64) float64 {
	return math.Abs(decay * (1.0 - damping) / (1.0 - damping*decay))
}
