// Package pieces renders the melodic assets: two Gymnopédie arrangements,
// a music box lullaby, and the Jupiter hymn with its tempo-stretched organ.
package pieces

import (
	"math/rand"

	"github.com/azu-azu/tsukisound/dsp"
	"github.com/azu-azu/tsukisound/score"
)

// Gymnopédie No.1 grid: 88 BPM in 3/4, D major. Two extra bars past the
// bar-39 climax leave room for the reverb tail.
const (
	gymnoBeat      = 0.682
	gymnoTotalBars = 41
	gymnoClimaxBar = 39
)

// gymnoMelody returns the melody line. The staggered chords of bars 38-39
// carry hand-tuned gains that differ between the two arrangements.
func gymnoMelody(bar38, bar39 []float64) []score.Note {
	notes := []score.Note{
		// Bars 1-4 are introduction, melody enters at bar 5.
		{Freq: score.Fs5, Bar: 5, Beat: 1, DurBeats: 1},
		{Freq: score.A5, Bar: 5, Beat: 2, DurBeats: 1},
		{Freq: score.G5, Bar: 6, Beat: 0, DurBeats: 1},
		{Freq: score.Fs5, Bar: 6, Beat: 1, DurBeats: 1},
		{Freq: score.Cs5, Bar: 6, Beat: 2, DurBeats: 1},
		{Freq: score.B4, Bar: 7, Beat: 0, DurBeats: 1},
		{Freq: score.Cs5, Bar: 7, Beat: 1, DurBeats: 1},
		{Freq: score.D5, Bar: 7, Beat: 2, DurBeats: 1},
		{Freq: score.A4, Bar: 8, Beat: 0, DurBeats: 3},
		{Freq: score.Fs4, Bar: 9, Beat: 0, DurBeats: 12, FadeOut: true},

		// Theme repeat and development.
		{Freq: score.Fs5, Bar: 13, Beat: 1, DurBeats: 1},
		{Freq: score.A5, Bar: 13, Beat: 2, DurBeats: 1},
		{Freq: score.G5, Bar: 14, Beat: 0, DurBeats: 1},
		{Freq: score.Fs5, Bar: 14, Beat: 1, DurBeats: 1},
		{Freq: score.Cs5, Bar: 14, Beat: 2, DurBeats: 1},
		{Freq: score.B4, Bar: 15, Beat: 0, DurBeats: 1},
		{Freq: score.Cs5, Bar: 15, Beat: 1, DurBeats: 1},
		{Freq: score.D5, Bar: 15, Beat: 2, DurBeats: 1},
		{Freq: score.A4, Bar: 16, Beat: 0, DurBeats: 3},
		{Freq: score.Cs5, Bar: 17, Beat: 0, DurBeats: 3},
		{Freq: score.Fs5, Bar: 18, Beat: 0, DurBeats: 3},
		{Freq: score.E5, Bar: 19, Beat: 0, DurBeats: 9, FadeOut: true},

		// Development, C naturals and alto layer.
		{Freq: score.A4, Bar: 22, Beat: 0, DurBeats: 1},
		{Freq: score.B4, Bar: 22, Beat: 1, DurBeats: 1},
		{Freq: score.C5, Bar: 22, Beat: 2, DurBeats: 1},
		{Freq: score.E5, Bar: 23, Beat: 0, DurBeats: 1},
		{Freq: score.D5, Bar: 23, Beat: 1, DurBeats: 1},
		{Freq: score.B4, Bar: 23, Beat: 2, DurBeats: 1},
		{Freq: score.D5, Bar: 24, Beat: 0, DurBeats: 1},
		{Freq: score.C5, Bar: 24, Beat: 1, DurBeats: 1},
		{Freq: score.B4, Bar: 24, Beat: 2, DurBeats: 1},
		{Freq: score.E4, Bar: 24, Beat: 1, DurBeats: 2},
		{Freq: score.D5, Bar: 25, Beat: 0, DurBeats: 5},
		{Freq: score.D4, Bar: 25, Beat: 1, DurBeats: 2},
		{Freq: score.D5, Bar: 26, Beat: 2, DurBeats: 1},
		{Freq: score.D4, Bar: 26, Beat: 1, DurBeats: 2},

		// Ascending passage.
		{Freq: score.E5, Bar: 27, Beat: 0, DurBeats: 1},
		{Freq: score.F5, Bar: 27, Beat: 1, DurBeats: 1},
		{Freq: score.G5, Bar: 27, Beat: 2, DurBeats: 1},
		{Freq: score.A5, Bar: 28, Beat: 0, DurBeats: 1},
		{Freq: score.C5, Bar: 28, Beat: 1, DurBeats: 1},
		{Freq: score.D5, Bar: 28, Beat: 2, DurBeats: 1},
		{Freq: score.E5, Bar: 29, Beat: 0, DurBeats: 1},
		{Freq: score.D5, Bar: 29, Beat: 1, DurBeats: 1},
		{Freq: score.B4, Bar: 29, Beat: 2, DurBeats: 1},
		{Freq: score.E4, Bar: 29, Beat: 1, DurBeats: 2},
		{Freq: score.D5, Bar: 30, Beat: 0, DurBeats: 5},
		{Freq: score.D4, Bar: 30, Beat: 1, DurBeats: 2},
		{Freq: score.D5, Bar: 31, Beat: 2, DurBeats: 1},
		{Freq: score.D4, Bar: 31, Beat: 1, DurBeats: 2},

		// Final section.
		{Freq: score.G5, Bar: 32, Beat: 0, DurBeats: 3},
		{Freq: score.Fs5, Bar: 33, Beat: 0, DurBeats: 3},
		{Freq: score.B4, Bar: 34, Beat: 0, DurBeats: 1},
		{Freq: score.A4, Bar: 34, Beat: 1, DurBeats: 1},
		{Freq: score.B4, Bar: 34, Beat: 2, DurBeats: 1},
		{Freq: score.Cs5, Bar: 35, Beat: 0, DurBeats: 1},
		{Freq: score.D5, Bar: 35, Beat: 1, DurBeats: 1},
		{Freq: score.E5, Bar: 35, Beat: 2, DurBeats: 1},
		{Freq: score.Cs5, Bar: 36, Beat: 0, DurBeats: 1},
		{Freq: score.D5, Bar: 36, Beat: 1, DurBeats: 1},
		{Freq: score.E5, Bar: 36, Beat: 2, DurBeats: 1},
		{Freq: score.Fs4, Bar: 37, Beat: 0, DurBeats: 3},
		{Freq: score.D4, Bar: 37, Beat: 1, DurBeats: 1},
		{Freq: score.G4, Bar: 37, Beat: 2, DurBeats: 1},

		// Bar 38: quiet A minor preparation, staggered entries.
		{Freq: score.A3, Bar: 38, Beat: 0.00, DurBeats: 3.5, Gain: bar38[0]},
		{Freq: score.E4, Bar: 38, Beat: 0.12 / gymnoBeat, DurBeats: 3.3, Gain: bar38[1]},
		{Freq: score.A4, Bar: 38, Beat: 0.24 / gymnoBeat, DurBeats: 3.1, Gain: bar38[2]},

		// Bar 39: D major climax.
		{Freq: score.D3, Bar: 39, Beat: 0.00, DurBeats: 6.0, Gain: bar39[0]},
		{Freq: score.D4, Bar: 39, Beat: 0.12 / gymnoBeat, DurBeats: 5.8, Gain: bar39[1]},
		{Freq: score.A4, Bar: 39, Beat: 0.21 / gymnoBeat, DurBeats: 5.5, Gain: bar39[2]},
		{Freq: score.D5, Bar: 39, Beat: 0.30 / gymnoBeat, DurBeats: 5.2, Gain: bar39[3]},
	}
	return notes
}

// gymnoHarmony holds one bar of accompaniment.
type gymnoHarmony struct {
	bass  float64
	chord [2]float64
}

// gymnoHarmonyByBar builds the bass/chord pattern: G3 under B3+D4 on odd
// bars, D3 under A3+C#4 on even bars, with an E minor context on bars 9-12
// and 19-21.
func gymnoHarmonyByBar() map[int]gymnoHarmony {
	eMinor := map[int]bool{9: true, 10: true, 11: true, 12: true, 19: true, 20: true, 21: true}
	out := make(map[int]gymnoHarmony, gymnoTotalBars)
	for bar := 1; bar <= gymnoTotalBars; bar++ {
		switch {
		case eMinor[bar]:
			out[bar] = gymnoHarmony{bass: score.E3, chord: [2]float64{score.B3, score.D4}}
		case bar%2 == 1:
			out[bar] = gymnoHarmony{bass: score.G3, chord: [2]float64{score.B3, score.D4}}
		default:
			out[bar] = gymnoHarmony{bass: score.D3, chord: [2]float64{score.A3, score.Cs4}}
		}
	}
	return out
}

func gymnoBarNotes(beat, durBeats float64) []score.Note {
	notes := make([]score.Note, 0, gymnoTotalBars)
	for bar := 1; bar <= gymnoTotalBars; bar++ {
		notes = append(notes, score.Note{Bar: bar, Beat: beat, DurBeats: durBeats})
	}
	return notes
}

// MoonlitGymnopedie renders the Satie arrangement on detuned sine layers
// with a cathedral reverb, crossfaded into a seamless loop.
func MoonlitGymnopedie(sampleRate float64) ([]float64, error) {
	seq := &score.Sequencer{SampleRate: sampleRate, BeatDuration: gymnoBeat, BeatsPerBar: 3}
	harmony := gymnoHarmonyByBar()

	const detune = 0.2

	melody := score.Part{
		Name:  "melody",
		Gain:  0.28,
		Notes: gymnoMelody([]float64{0.14, 0.10, 0.09}, []float64{0.16, 0.10, 0.12, 0.08}),
		Render: func(n score.Note, tAbs, tLocal []float64) []float64 {
			decay := 4.5
			if n.Bar >= gymnoClimaxBar {
				decay *= 2.0
			}
			env := dsp.Pluck{Attack: 0.15, Decay: decay, EndFade: 0.05}
			dur := n.DurBeats * gymnoBeat
			rolloff := score.HighFreqRolloff(n.Freq, 600, score.E6, 0.35)
			if n.Gain != 0 {
				rolloff = 1.0 // hand-tuned gains are final
			}
			out := make([]float64, len(tAbs))
			for i, t := range tAbs {
				out[i] = dsp.DetunedUnison(n.Freq, detune, t) * env.Gain(tLocal[i], dur) * rolloff
			}
			return out
		},
	}

	bass := score.Part{
		Name:  "bass",
		Gain:  0.16,
		Notes: gymnoBarNotes(0, 3),
		Render: func(n score.Note, tAbs, tLocal []float64) []float64 {
			env := dsp.Pluck{Attack: 0.20, Decay: 3.5, EndFade: 0.05}
			dur := n.DurBeats * gymnoBeat
			freq := harmony[n.Bar].bass
			out := make([]float64, len(tAbs))
			for i, t := range tAbs {
				out[i] = dsp.Sine(freq, t) * env.Gain(tLocal[i], dur)
			}
			return out
		},
	}

	chords := score.Part{
		Name:  "chords",
		Gain:  0.06,
		Notes: gymnoBarNotes(1, 2),
		Render: func(n score.Note, tAbs, tLocal []float64) []float64 {
			env := dsp.Pluck{Attack: 0.08, Decay: 2.5, EndFade: 0.05}
			dur := n.DurBeats * gymnoBeat
			freqs := harmony[n.Bar].chord
			out := make([]float64, len(tAbs))
			for i, t := range tAbs {
				sum := 0.0
				for _, f := range freqs {
					sum += dsp.DetunedUnison(f, detune, t)
				}
				out[i] = sum / float64(len(freqs)) * env.Gain(tLocal[i], dur)
			}
			return out
		},
	}

	mixed := seq.Render(gymnoTotalBars, []score.Part{melody, bass, chords})
	dsp.SoftClip(mixed, 0.9)

	rev, err := dsp.NewReverb(dsp.CathedralReverb, sampleRate)
	if err != nil {
		return nil, err
	}
	out := rev.Process(mixed)

	for i := range out {
		out[i] *= 1.05
	}
	dsp.SoftClip(out, 0.95)
	dsp.LoopCrossfade(out, sampleRate, 0.1)
	dsp.Normalize(out, 0.9)
	return out, nil
}

// AcousticGymnopedie renders the same score on plucked-string voices with a
// warm room reverb. It loops silence-to-silence instead of crossfading, so
// the edges are faded rather than blended.
func AcousticGymnopedie(sampleRate float64, rng *rand.Rand) ([]float64, error) {
	seq := &score.Sequencer{SampleRate: sampleRate, BeatDuration: gymnoBeat, BeatsPerBar: 3}
	harmony := gymnoHarmonyByBar()

	melody := score.Part{
		Name:  "melody",
		Gain:  0.30,
		Notes: gymnoMelody([]float64{0.18, 0.14, 0.12}, []float64{0.20, 0.14, 0.16, 0.12}),
		Render: func(n score.Note, tAbs, tLocal []float64) []float64 {
			decay := 3.0
			if n.Bar >= gymnoClimaxBar {
				decay *= 1.5
			}
			guitar := dsp.GuitarVoice{Brightness: 1.0}
			env := dsp.Pluck{Attack: 0.008, AttackPower: 0.7, Decay: decay, EndFade: 0.06, CosineFade: true}
			dur := n.DurBeats * gymnoBeat
			rolloff := score.HighFreqRolloff(n.Freq, 600, score.E6, 0.25)
			if n.Gain != 0 {
				rolloff = 1.0
			}
			out := guitar.Render(n.Freq, tLocal, rng)
			for i := range out {
				out[i] *= env.Gain(tLocal[i], dur) * rolloff
			}
			return out
		},
	}

	bass := score.Part{
		Name:  "bass",
		Gain:  0.22,
		Notes: gymnoBarNotes(0, 3),
		Render: func(n score.Note, tAbs, tLocal []float64) []float64 {
			guitar := dsp.GuitarVoice{Brightness: 0.7}
			env := dsp.Pluck{Attack: 0.012, AttackPower: 0.7, Decay: 2.5, EndFade: 0.06, CosineFade: true}
			dur := n.DurBeats * gymnoBeat
			out := guitar.Render(harmony[n.Bar].bass, tLocal, rng)
			for i := range out {
				out[i] *= env.Gain(tLocal[i], dur)
			}
			return out
		},
	}

	chords := score.Part{
		Name:  "chords",
		Gain:  0.08,
		Notes: gymnoBarNotes(1, 2),
		Render: func(n score.Note, tAbs, tLocal []float64) []float64 {
			guitar := dsp.GuitarVoice{Brightness: 0.8}
			env := dsp.Pluck{Attack: 0.006, AttackPower: 0.7, Decay: 2.0, EndFade: 0.06, CosineFade: true}
			dur := n.DurBeats * gymnoBeat
			freqs := harmony[n.Bar].chord
			out := make([]float64, len(tLocal))
			// Strummed: each chord tone starts a little later, but the
			// shared envelope still runs from the beat.
			for v, f := range freqs {
				strum := float64(v) * 0.015
				tStrum := make([]float64, len(tLocal))
				for i, t := range tLocal {
					if t > strum {
						tStrum[i] = t - strum
					}
				}
				tone := guitar.Render(f, tStrum, rng)
				for i := range out {
					out[i] += tone[i]
				}
			}
			for i := range out {
				out[i] = out[i] / float64(len(freqs)) * env.Gain(tLocal[i], dur)
			}
			return out
		},
	}

	mixed := seq.Render(gymnoTotalBars, []score.Part{melody, bass, chords})
	dsp.SoftClip(mixed, 0.9)

	rev, err := dsp.NewReverb(dsp.ReverbParams{
		RoomSize: 1.8, Damping: 0.50, Decay: 0.55, Mix: 0.28, Predelay: 0.018,
	}, sampleRate)
	if err != nil {
		return nil, err
	}
	out := rev.Process(mixed)

	for i := range out {
		out[i] *= 1.05
	}
	dsp.SoftClip(out, 0.95)
	dsp.EdgeFade(out, sampleRate, 0.8, 3.0)
	dsp.Normalize(out, 0.9)
	return out, nil
}
