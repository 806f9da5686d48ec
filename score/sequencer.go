package score

import (
	"math"

	"github.com/azu-azu/tsukisound/dsp"
)

// NoteRender produces the samples for one note. tAbs holds absolute buffer
// times for phase-continuous oscillators, tLocal the same times relative to
// the note start for envelopes and plucked tones.
type NoteRender func(n Note, tAbs, tLocal []float64) []float64

// Part is one layer of a piece: its notes, default gain, and the renderer
// that voices them.
type Part struct {
	Name   string
	Gain   float64
	Notes  []Note
	Render NoteRender
}

// Sequencer places notes on a fixed-tempo grid and sums them additively
// into a mono buffer. Pieces with a tempo map render through TempoMap
// instead; this grid covers the constant-tempo material.
type Sequencer struct {
	SampleRate   float64
	BeatDuration float64
	BeatsPerBar  float64
}

// BarDuration returns the length of one bar in seconds.
func (s *Sequencer) BarDuration() float64 {
	return s.BeatDuration * s.BeatsPerBar
}

// Duration returns the length in seconds of the given number of bars.
func (s *Sequencer) Duration(totalBars int) float64 {
	return float64(totalBars) * s.BarDuration()
}

// NoteStart returns the note's start time in seconds.
func (s *Sequencer) NoteStart(n Note) float64 {
	return (float64(n.Bar)-1)*s.BarDuration() + n.Beat*s.BeatDuration
}

// Render sums all parts over totalBars and returns the mixed buffer.
// Superposition holds: the output equals the sample-wise sum of each part
// rendered alone.
func (s *Sequencer) Render(totalBars int, parts []Part) []float64 {
	buf := make([]float64, int(s.Duration(totalBars)*s.SampleRate))
	for _, p := range parts {
		s.renderPart(buf, p)
	}
	return buf
}

func (s *Sequencer) renderPart(buf []float64, p Part) {
	for _, n := range p.Notes {
		start := s.NoteStart(n)
		dur := n.DurBeats * s.BeatDuration
		i0 := int(math.Ceil(start * s.SampleRate))
		i1 := int(math.Ceil((start + dur) * s.SampleRate))
		if i0 < 0 {
			i0 = 0
		}
		if i1 > len(buf) {
			i1 = len(buf)
		}
		if i0 >= i1 {
			// Scheduled outside the buffer; nothing sounds.
			continue
		}

		tAbs := make([]float64, i1-i0)
		tLocal := make([]float64, i1-i0)
		for i := range tAbs {
			tAbs[i] = float64(i0+i) / s.SampleRate
			tLocal[i] = tAbs[i] - start
		}

		samples := p.Render(n, tAbs, tLocal)

		gain := n.Gain
		if gain == 0 {
			gain = p.Gain
		}
		for i, v := range samples {
			g := gain
			if n.FadeOut {
				g *= dsp.FadeOutTaper(tLocal[i] / dur)
			}
			buf[i0+i] += v * g
		}
	}
}

// HighFreqRolloff reduces gain for bright notes so upper-register melody
// lines do not pierce the mix. Frequencies below threshold pass at unity;
// above it the reduction ramps linearly up to amount at maxFreq.
func HighFreqRolloff(freq, threshold, maxFreq, amount float64) float64 {
	if freq < threshold {
		return 1.0
	}
	ratio := (freq - threshold) / (maxFreq - threshold)
	if ratio > 1 {
		ratio = 1
	}
	return 1.0 - ratio*amount
}
