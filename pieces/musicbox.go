package pieces

import (
	"github.com/azu-azu/tsukisound/dsp"
	"github.com/azu-azu/tsukisound/score"
)

// Music box lullaby: 60 BPM in 3/4, F major, 32 bars.
const (
	musicBoxBeat      = 1.0
	musicBoxTotalBars = 32
)

func musicBoxMelody() []score.Note {
	return []score.Note{
		// Theme.
		{Freq: score.A5, Bar: 1, Beat: 2, DurBeats: 1},
		{Freq: score.A5, Bar: 2, Beat: 0, DurBeats: 1},
		{Freq: score.C6, Bar: 2, Beat: 1, DurBeats: 2},
		{Freq: score.A5, Bar: 3, Beat: 0, DurBeats: 1},
		{Freq: score.C6, Bar: 3, Beat: 1, DurBeats: 1},
		{Freq: score.F6, Bar: 3, Beat: 2, DurBeats: 1},
		{Freq: score.E6, Bar: 4, Beat: 0, DurBeats: 3},
		{Freq: score.G5, Bar: 5, Beat: 2, DurBeats: 1},
		{Freq: score.G5, Bar: 6, Beat: 0, DurBeats: 1},
		{Freq: score.Bb5, Bar: 6, Beat: 1, DurBeats: 2},
		{Freq: score.G5, Bar: 7, Beat: 0, DurBeats: 1},
		{Freq: score.Bb5, Bar: 7, Beat: 1, DurBeats: 1},
		{Freq: score.E6, Bar: 7, Beat: 2, DurBeats: 1},
		{Freq: score.F6, Bar: 8, Beat: 0, DurBeats: 3},

		// Theme repeat with variation.
		{Freq: score.A5, Bar: 9, Beat: 2, DurBeats: 1},
		{Freq: score.A5, Bar: 10, Beat: 0, DurBeats: 1},
		{Freq: score.C6, Bar: 10, Beat: 1, DurBeats: 2},
		{Freq: score.A5, Bar: 11, Beat: 0, DurBeats: 1},
		{Freq: score.C6, Bar: 11, Beat: 1, DurBeats: 1},
		{Freq: score.F6, Bar: 11, Beat: 2, DurBeats: 1},
		{Freq: score.E6, Bar: 12, Beat: 0, DurBeats: 2},
		{Freq: score.D6, Bar: 12, Beat: 2, DurBeats: 1},
		{Freq: score.C6, Bar: 13, Beat: 0, DurBeats: 1},
		{Freq: score.D6, Bar: 13, Beat: 1, DurBeats: 1},
		{Freq: score.E6, Bar: 13, Beat: 2, DurBeats: 1},
		{Freq: score.F6, Bar: 14, Beat: 0, DurBeats: 2},
		{Freq: score.E6, Bar: 14, Beat: 2, DurBeats: 1},
		{Freq: score.D6, Bar: 15, Beat: 0, DurBeats: 1},
		{Freq: score.C6, Bar: 15, Beat: 1, DurBeats: 1},
		{Freq: score.Bb5, Bar: 15, Beat: 2, DurBeats: 1},
		{Freq: score.A5, Bar: 16, Beat: 0, DurBeats: 3},

		// Contrasting section.
		{Freq: score.D6, Bar: 17, Beat: 1, DurBeats: 1},
		{Freq: score.D6, Bar: 17, Beat: 2, DurBeats: 1},
		{Freq: score.D6, Bar: 18, Beat: 0, DurBeats: 1},
		{Freq: score.E6, Bar: 18, Beat: 1, DurBeats: 2},
		{Freq: score.C6, Bar: 19, Beat: 0, DurBeats: 1},
		{Freq: score.C6, Bar: 19, Beat: 1, DurBeats: 1},
		{Freq: score.C6, Bar: 19, Beat: 2, DurBeats: 1},
		{Freq: score.C6, Bar: 20, Beat: 0, DurBeats: 1},
		{Freq: score.D6, Bar: 20, Beat: 1, DurBeats: 2},
		{Freq: score.Bb5, Bar: 21, Beat: 0, DurBeats: 1},
		{Freq: score.Bb5, Bar: 21, Beat: 1, DurBeats: 1},
		{Freq: score.Bb5, Bar: 21, Beat: 2, DurBeats: 1},
		{Freq: score.Bb5, Bar: 22, Beat: 0, DurBeats: 1},
		{Freq: score.C6, Bar: 22, Beat: 1, DurBeats: 1},
		{Freq: score.D6, Bar: 22, Beat: 2, DurBeats: 1},
		{Freq: score.C6, Bar: 23, Beat: 0, DurBeats: 2},
		{Freq: score.Bb5, Bar: 23, Beat: 2, DurBeats: 1},
		{Freq: score.A5, Bar: 24, Beat: 0, DurBeats: 3},

		// Final theme, gentle ending.
		{Freq: score.A5, Bar: 25, Beat: 2, DurBeats: 1},
		{Freq: score.A5, Bar: 26, Beat: 0, DurBeats: 1},
		{Freq: score.C6, Bar: 26, Beat: 1, DurBeats: 2},
		{Freq: score.A5, Bar: 27, Beat: 0, DurBeats: 1},
		{Freq: score.C6, Bar: 27, Beat: 1, DurBeats: 1},
		{Freq: score.F6, Bar: 27, Beat: 2, DurBeats: 1},
		{Freq: score.E6, Bar: 28, Beat: 0, DurBeats: 3},
		{Freq: score.D6, Bar: 29, Beat: 0, DurBeats: 1},
		{Freq: score.C6, Bar: 29, Beat: 1, DurBeats: 1},
		{Freq: score.Bb5, Bar: 29, Beat: 2, DurBeats: 1},
		{Freq: score.A5, Bar: 30, Beat: 0, DurBeats: 2},
		{Freq: score.G5, Bar: 30, Beat: 2, DurBeats: 1},
		{Freq: score.F5, Bar: 31, Beat: 0, DurBeats: 3},
		{Freq: score.F5, Bar: 32, Beat: 0, DurBeats: 3, Gain: 0.2},
	}
}

// musicBoxAccompaniment lays a bass note on beat 1 and two chord tones on
// beats 2-3 of every bar, following the F major harmonic plan.
func musicBoxAccompaniment() []score.Note {
	type pattern struct {
		bars  []int
		bass  float64
		chord [2]float64
	}
	patterns := []pattern{
		{[]int{1, 2, 3, 4}, score.F4, [2]float64{score.A4, score.C5}},
		{[]int{5, 6}, score.Bb4, [2]float64{score.D5, score.F5}},
		{[]int{7, 8}, score.F4, [2]float64{score.A4, score.C5}},
		{[]int{9, 10, 11, 12}, score.F4, [2]float64{score.A4, score.C5}},
		{[]int{13, 14}, score.C4, [2]float64{score.E4, score.Bb4}},
		{[]int{15, 16}, score.F4, [2]float64{score.A4, score.C5}},
		{[]int{17, 18}, score.Bb4, [2]float64{score.D5, score.F5}},
		{[]int{19, 20}, score.C4, [2]float64{score.E4, score.G4}},
		{[]int{21, 22}, score.Bb4, [2]float64{score.D5, score.F5}},
		{[]int{23, 24}, score.F4, [2]float64{score.A4, score.C5}},
		{[]int{25, 26, 27, 28}, score.F4, [2]float64{score.A4, score.C5}},
		{[]int{29, 30}, score.Bb4, [2]float64{score.D5, score.F5}},
		{[]int{31, 32}, score.F4, [2]float64{score.A4, score.C5}},
	}

	var notes []score.Note
	for _, p := range patterns {
		for _, bar := range p.bars {
			notes = append(notes,
				score.Note{Freq: p.bass, Bar: bar, Beat: 0, DurBeats: 1},
				score.Note{Freq: p.chord[0], Bar: bar, Beat: 1, DurBeats: 0.8},
				score.Note{Freq: p.chord[1], Bar: bar, Beat: 2, DurBeats: 0.8},
			)
		}
	}
	return notes
}

// MusicBox renders the lullaby on bell voices through a small-chamber
// reverb, fading silence-to-silence for looping.
func MusicBox(sampleRate float64) ([]float64, error) {
	seq := &score.Sequencer{SampleRate: sampleRate, BeatDuration: musicBoxBeat, BeatsPerBar: 3}

	const melodyDecay = 2.5

	melody := score.Part{
		Name:  "melody",
		Gain:  0.35,
		Notes: musicBoxMelody(),
		Render: func(n score.Note, tAbs, tLocal []float64) []float64 {
			voice := dsp.MusicBoxVoice{Brightness: 1.0, Decay: melodyDecay}
			env := dsp.Pluck{Attack: 0.005, AttackPower: 1, Decay: melodyDecay, EndFade: 0.05}
			dur := n.DurBeats * musicBoxBeat
			out := voice.Render(n.Freq, tLocal)
			for i := range out {
				out[i] *= env.Gain(tLocal[i], dur)
			}
			return out
		},
	}

	accompaniment := score.Part{
		Name:  "accompaniment",
		Gain:  0.15,
		Notes: musicBoxAccompaniment(),
		Render: func(n score.Note, tAbs, tLocal []float64) []float64 {
			// Duller strike, but the tines ring with the same decay.
			voice := dsp.MusicBoxVoice{Brightness: 0.5, Decay: melodyDecay}
			env := dsp.Pluck{Attack: 0.008, AttackPower: 1, Decay: 1.8, EndFade: 0.05}
			dur := n.DurBeats * musicBoxBeat
			out := voice.Render(n.Freq, tLocal)
			for i := range out {
				out[i] *= env.Gain(tLocal[i], dur)
			}
			return out
		},
	}

	mixed := seq.Render(musicBoxTotalBars, []score.Part{melody, accompaniment})
	dsp.SoftClip(mixed, 0.9)

	rev, err := dsp.NewReverb(dsp.MusicBoxReverb, sampleRate)
	if err != nil {
		return nil, err
	}
	out := rev.Process(mixed)

	for i := range out {
		out[i] *= 1.05
	}
	dsp.SoftClip(out, 0.95)
	dsp.EdgeFade(out, sampleRate, 0.5, 2.5)
	dsp.Normalize(out, 0.9)
	return out, nil
}
