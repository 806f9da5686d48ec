package pieces

import (
	"math"
	"math/rand"

	"github.com/azu-azu/tsukisound/dsp"
)

// AcousticJupiter renders the Jupiter theme on the plucked guitar voice: the
// same tempo map and melody as the cathedral piece, transposed down two
// semitones, through a warm room reverb with faded edges instead of the
// organ texture and loopable tail.
func AcousticJupiter(sampleRate float64, rng *rand.Rand) ([]float64, error) {
	tm, err := JupiterTempoMap()
	if err != nil {
		return nil, err
	}

	duration := jupiterLeadIn + tm.CycleDuration() + 2.0
	n := int(duration * sampleRate)
	out := make([]float64, n)

	transpose := math.Pow(2, -2.0/12.0)
	barDur := tm.BarDuration()
	guitar := dsp.GuitarVoice{Brightness: 1.0}
	env := dsp.Pluck{Attack: 0.008, AttackPower: 0.7, Decay: 2.5, EndFade: 0.06, CosineFade: true}

	for _, note := range jupiterMelody() {
		start := (float64(note.Bar)-1)*barDur + note.Beat*jupiterBeat
		effDur := note.DurBeats*jupiterBeat - note.Breath

		i0 := int(math.Ceil(tm.MusicalToReal(start) * sampleRate))
		i1 := int(math.Ceil(tm.MusicalToReal(start+effDur) * sampleRate))
		if i0 < 0 {
			i0 = 0
		}
		if i1 > n {
			i1 = n
		}
		if i0 >= i1 {
			continue
		}

		// The pluck runs on musical time, so the decay stretches with the
		// section tempo the way the original sections breathe.
		tLocal := make([]float64, i1-i0)
		for k := range tLocal {
			tLocal[k] = tm.RealToMusical(float64(i0+k)/sampleRate) - start
		}

		freq := note.Freq * transpose
		gain := 0.35
		if freq > 600 {
			gain *= 0.85
		}
		tone := guitar.Render(freq, tLocal, rng)
		for k, v := range tone {
			out[i0+k] += v * env.Gain(tLocal[k], effDur) * gain
		}
	}

	dsp.SoftClip(out, 0.9)

	rev, err := dsp.NewReverb(dsp.ReverbParams{
		RoomSize: 2.0, Damping: 0.50, Decay: 0.58, Mix: 0.32, Predelay: 0.022,
	}, sampleRate)
	if err != nil {
		return nil, err
	}
	wet := rev.Process(out)

	for i := range wet {
		wet[i] *= 1.05
	}
	dsp.SoftClip(wet, 0.95)
	dsp.EdgeFade(wet, sampleRate, 0.5, 2.5)
	dsp.Normalize(wet, 0.9)
	return wet, nil
}
