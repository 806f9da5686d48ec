package pieces

import (
	"math"
	"math/rand"

	"github.com/azu-azu/tsukisound/dsp"
	"github.com/azu-azu/tsukisound/score"
)

// Jupiter hymn timing: 60 BPM nominal in 3/4, 25 bars, with per-section
// tempo stretch. The two-beat intro rest is skipped because there is no
// accompaniment to wait for, and a short lead-in makes the start feel
// natural.
const (
	jupiterBeat      = 1.0
	jupiterTotalBars = 25
	jupiterLeadIn    = 0.5
	jupiterTailPad   = 1.0
)

const twoPi = 2 * math.Pi

// JupiterTempoMap returns the section layout: slow a cappella opening,
// stepwise acceleration, and a final ritardando from 1.2 back to 1.0.
func JupiterTempoMap() (*score.TempoMap, error) {
	return score.NewTempoMap(score.TempoMap{
		Sections: []score.TempoSection{
			{StartBar: 1, Tempo: 0.8},
			{StartBar: 5, Tempo: 1.0},
			{StartBar: 9, Tempo: 1.1},
			{StartBar: 13, Tempo: 1.2},
			{StartBar: 17, Tempo: 1.2},
			{StartBar: 21, Tempo: 1.2, TempoEnd: 1.0},
		},
		TotalBars:      jupiterTotalBars,
		BeatDuration:   jupiterBeat,
		BeatsPerBar:    3,
		IntroRestBeats: 2,
		LeadIn:         jupiterLeadIn,
	})
}

func jupiterMelody() []score.Note {
	n := func(freq float64, bar int, beat, dur, breath float64) score.Note {
		return score.Note{Freq: freq, Bar: bar, Beat: beat, DurBeats: dur, Breath: breath}
	}
	return []score.Note{
		n(score.E4, 1, 2.0, score.Eighth, 0),
		n(score.G4, 1, 2.5, score.Eighth, 0),

		n(score.A4, 2, 0.0, score.Quarter, score.BreathShort),
		n(score.A4, 2, 1.0, score.Eighth, 0),
		n(score.C5, 2, 1.5, score.Eighth, 0),
		n(score.B4, 2, 2.0, score.DottedEighth, 0),
		n(score.G4, 2, 2.75, score.Sixteenth, 0),

		n(score.C5, 3, 0.0, score.Eighth, 0),
		n(score.D5, 3, 0.5, score.Eighth, 0),
		n(score.C5, 3, 1.0, score.Quarter, 0),
		n(score.B4, 3, 2.0, score.Quarter, 0),

		n(score.A4, 4, 0.0, score.Eighth, 0),
		n(score.B4, 4, 0.5, score.Eighth, 0),
		n(score.A4, 4, 1.0, score.Quarter, 0),
		n(score.G4, 4, 2.0, score.Quarter, 0),

		n(score.E4, 5, 0.0, score.Half, score.BreathLong),
		n(score.E4, 5, 2.0, score.Eighth, 0),
		n(score.G4, 5, 2.5, score.Eighth, 0),

		n(score.A4, 6, 0.0, score.Quarter, score.BreathLong),
		n(score.A4, 6, 1.0, score.Eighth, 0),
		n(score.C5, 6, 1.5, score.Eighth, 0),
		n(score.B4, 6, 2.0, score.DottedEighth, 0),
		n(score.G4, 6, 2.75, score.Sixteenth, 0),

		n(score.C5, 7, 0.0, score.Eighth, 0),
		n(score.D5, 7, 0.5, score.Eighth, 0),
		n(score.E5, 7, 1.0, score.Quarter, score.BreathShort),
		n(score.E5, 7, 2.0, score.Quarter, score.BreathShort),

		n(score.E5, 8, 0.0, score.Eighth, 0),
		n(score.D5, 8, 0.5, score.Eighth, 0),
		n(score.C5, 8, 1.0, score.Quarter, 0),
		n(score.D5, 8, 2.0, score.Quarter, 0),

		n(score.C5, 9, 0.0, score.Half, score.BreathLong),
		n(score.G5, 9, 2.0, score.Eighth, 0),
		n(score.E5, 9, 2.5, score.Eighth, 0),

		n(score.D5, 10, 0.0, score.Quarter, score.BreathShort),
		n(score.D5, 10, 1.0, score.Quarter, 0),
		n(score.C5, 10, 2.0, score.Eighth, 0),
		n(score.E5, 10, 2.5, score.Eighth, 0),

		n(score.D5, 11, 0.0, score.Quarter, 0),
		n(score.G4, 11, 1.0, score.Quarter, score.BreathShort),
		n(score.G5, 11, 2.0, score.Eighth, 0),
		n(score.E5, 11, 2.5, score.Eighth, 0),

		n(score.D5, 12, 0.0, score.Quarter, score.BreathShort),
		n(score.D5, 12, 1.0, score.Quarter, 0),
		n(score.E5, 12, 2.0, score.Eighth, 0),
		n(score.G5, 12, 2.5, score.Eighth, score.BreathShort),

		n(score.A5, 13, 0.0, score.Half, score.BreathLong),
		n(score.A5, 13, 2.0, score.Eighth, 0),
		n(score.B5, 13, 2.5, score.Eighth, 0),

		n(score.C6, 14, 0.0, score.Quarter, 0),
		n(score.B5, 14, 1.0, score.Quarter, 0),
		n(score.A5, 14, 2.0, score.Quarter, 0),

		n(score.G5, 15, 0.0, score.Quarter, 0),
		n(score.C6, 15, 1.0, score.Quarter, 0),
		n(score.E5, 15, 2.0, score.Quarter, 0),

		n(score.D5, 16, 0.0, score.Eighth, 0),
		n(score.C5, 16, 0.5, score.Eighth, 0),
		n(score.D5, 16, 1.0, score.Quarter, 0),
		n(score.E5, 16, 2.0, score.Quarter, 0),

		n(score.G5, 17, 0.0, score.Half, score.BreathLong),
		n(score.E5, 17, 2.0, score.Eighth, 0),
		n(score.G5, 17, 2.5, score.Eighth, score.BreathShort),

		n(score.A5, 18, 0.0, score.Quarter, score.BreathShort),
		n(score.A5, 18, 1.0, score.Eighth, 0),
		n(score.C6, 18, 1.5, score.Eighth, 0),
		n(score.B5, 18, 2.0, score.DottedEighth, 0),
		n(score.G5, 18, 2.75, score.Sixteenth, 0),

		n(score.C6, 19, 0.0, score.Eighth, 0),
		n(score.D6, 19, 0.5, score.Eighth, 0),
		n(score.C6, 19, 1.0, score.Quarter, score.BreathShort),
		n(score.B5, 19, 2.0, score.Quarter, 0),

		n(score.A5, 20, 0.0, score.Eighth, 0),
		n(score.B5, 20, 0.5, score.Eighth, 0),
		n(score.A5, 20, 1.0, score.Quarter, 0),
		n(score.G5, 20, 2.0, score.Quarter, 0),

		n(score.E5, 21, 0.0, score.Half, score.BreathLong),
		n(score.E5, 21, 2.0, score.Eighth, 0),
		n(score.G5, 21, 2.5, score.Eighth, score.BreathShort),

		n(score.A5, 22, 0.0, score.Quarter, score.BreathShort),
		n(score.A5, 22, 1.0, score.Eighth, 0),
		n(score.C6, 22, 1.5, score.Eighth, 0),
		n(score.B5, 22, 2.0, score.DottedEighth, 0),
		n(score.G5, 22, 2.75, score.Sixteenth, score.BreathShort),

		n(score.C6, 23, 0.0, score.Eighth, 0),
		n(score.D6, 23, 0.5, score.Eighth, 0),
		n(score.E6, 23, 1.0, score.Quarter, score.BreathShort),
		n(score.E6, 23, 2.0, score.Quarter, score.BreathShort),

		n(score.E6, 24, 0.0, score.Eighth, 0),
		n(score.D6, 24, 0.5, score.Eighth, 0),
		n(score.C6, 24, 1.0, score.Quarter, 0),
		n(score.D6, 24, 2.0, score.Quarter, 0),

		n(score.C6, 25, 0.0, score.DottedHalf, 0),
	}
}

// jupiterDrone renders the C3+G3 organ pad. Section 0 is silent so the
// melody opens a cappella, section 1 fades it in, and section 5 fades it
// back out, giving the loop a silent seam at both ends.
func jupiterDrone(t []float64, tm *score.TempoMap) []float64 {
	const (
		rootFreq  = score.C3
		fifthFreq = score.G3
		lfoFreq   = 0.02
	)
	harmonics := []float64{1, 2, 3, 4}
	amps := []float64{0.9, 0.4, 0.25, 0.15}

	out := make([]float64, len(t))
	for i, time := range t {
		musical := tm.RealToMusical(time)
		section := tm.SectionAt(musical)
		progress := tm.SectionProgress(musical, section)

		lfo := 0.6 + 0.2*math.Sin(twoPi*lfoFreq*time)

		var volume float64
		switch {
		case section == 0:
			volume = 0
		case section == 1:
			s := math.Sin(progress * math.Pi * 0.5)
			volume = s * s
		case section == 5:
			switch {
			case progress < 0.2:
				volume = 1
			case progress < 0.8:
				c := math.Cos((progress - 0.2) / 0.6 * math.Pi * 0.5)
				volume = c * c
			default:
				volume = 0
			}
		default:
			volume = 1
		}
		if volume == 0 {
			continue
		}

		value := 0.0
		for h, a := range amps {
			value += a * 0.5 * math.Sin(twoPi*rootFreq*harmonics[h]*time)
			value += a * 0.35 * math.Sin(twoPi*fifthFreq*harmonics[h]*time)
		}
		out[i] = value * lfo * 0.12 * volume
	}
	return out
}

// jupiterMelodyLayer renders the theme. The opening bar sounds like the
// Gymnopédie voice, crossfades into an organ during bar 2, switches to a
// trumpet at bar 17 beat 2 and a clarinet at bar 21 beat 2, and the
// clarinet fades out across the final section.
func jupiterMelodyLayer(t []float64, tm *score.TempoMap) []float64 {
	notes := jupiterMelody()
	fullCycle := tm.MusicalLength()
	barDur := tm.BarDuration()

	transpose := math.Pow(2, -2.0/12.0)

	organ := dsp.HarmonicVoice{Partials: dsp.OrganPartials, VibratoRate: 4.0, VibratoDepth: 0.001}
	trumpet := dsp.HarmonicVoice{Partials: dsp.TrumpetPartials, VibratoRate: 4.0, VibratoDepth: 0.0015}
	clarinet := dsp.HarmonicVoice{Partials: dsp.ClarinetPartials, VibratoRate: 4.0, VibratoDepth: 0.001}

	const (
		attack       = 0.15
		release      = 0.18
		gymnoAttack  = 0.35
		gymnoDecay   = 4.5
		gymnoRelease = 0.5
		gymnoDetune  = 0.1
		masterGain   = 0.22
		gymnoGain    = 0.28
	)
	asrEnv := dsp.ASR{Attack: attack, Release: release}
	gymnoEnv := dsp.ADR{Attack: gymnoAttack, Decay: gymnoDecay, Release: gymnoRelease}

	crossfadeStart := 1*barDur + 1*jupiterBeat
	crossfadeDur := 2 * jupiterBeat
	trumpetStart := 16*barDur + 2*jupiterBeat
	clarinetStart := 20*barDur + 2*jupiterBeat

	type span struct {
		start   float64
		effDur  float64
		freq    float64
		rolloff float64
	}
	spans := make([]span, len(notes))
	for i, n := range notes {
		start := (float64(n.Bar)-1)*barDur + n.Beat*jupiterBeat
		dur := n.DurBeats * jupiterBeat
		effDur := dur
		if n.Breath > 0 {
			effDur = math.Max(dur-n.Breath, attack)
		}
		freq := n.Freq * transpose
		spans[i] = span{
			start:   start,
			effDur:  effDur,
			freq:    freq,
			rolloff: score.HighFreqRolloff(freq, 600, score.C6, 0.35),
		}
	}

	out := make([]float64, len(t))
	for i, time := range t {
		musical := tm.RealToMusical(time)
		local := math.Mod(musical, fullCycle)
		section := tm.SectionAt(musical)
		progress := tm.SectionProgress(musical, section)

		var organBlend float64
		switch {
		case local < crossfadeStart:
			organBlend = 0
		case local < crossfadeStart+crossfadeDur:
			organBlend = (local - crossfadeStart) / crossfadeDur
		default:
			organBlend = 1
		}
		activeRelease := release
		if organBlend < 1 {
			activeRelease = gymnoRelease
		}

		value := 0.0
		for _, sp := range spans {
			if local < sp.start || local >= sp.start+sp.effDur+activeRelease {
				continue
			}
			dt := local - sp.start

			switch {
			case organBlend == 0:
				env := gymnoEnv.Gain(dt, sp.effDur)
				value += dsp.DetunedUnison(sp.freq, gymnoDetune, time) * env * gymnoGain

			case organBlend < 1:
				gymnoV := dsp.DetunedUnison(sp.freq, gymnoDetune, time) * gymnoEnv.Gain(dt, sp.effDur)
				organV := organ.Sample(sp.freq, time) * asrEnv.Gain(dt, sp.effDur)
				value += gymnoV * gymnoGain * (1 - organBlend)
				value += organV * sp.rolloff * masterGain * organBlend

			case sp.start < trumpetStart:
				env := asrEnv.Gain(dt, sp.effDur)
				value += organ.Sample(sp.freq, time) * env * sp.rolloff * masterGain

			case sp.start < clarinetStart:
				env := asrEnv.Gain(dt, sp.effDur)
				value += trumpet.Sample(sp.freq, time) * env * sp.rolloff * masterGain

			default:
				env := asrEnv.Gain(dt, sp.effDur)
				climax := 1.1
				if progress >= 0.3 {
					c := math.Cos((progress - 0.3) / 0.7 * math.Pi * 0.5)
					climax = 1.1 * c * c
				}
				value += clarinet.Sample(sp.freq, time) * env * sp.rolloff * masterGain * climax
			}
		}
		out[i] = dsp.SoftLimit(value, 0.8)
	}
	return out
}

// jupiterChimes scatters tree-chime cascades at fixed real-time positions,
// scaled by the section they land in: distant early on, full at the climax,
// fading with the ending.
func jupiterChimes(t []float64, tm *score.TempoMap, sampleRate float64, rng *rand.Rand) []float64 {
	const (
		numGrains       = 24
		cascadeInterval = 0.020
		grainDuration   = 1.2
		baseFreq        = 6000.0
		detuneRange     = 3.0
		masterGain      = 0.03
		distantGain     = 0.1
	)
	chimeTimes := []float64{15, 25, 30, 38, 48, 55, 62, 68}

	baseFreqs := make([]float64, numGrains)
	for i := range baseFreqs {
		baseFreqs[i] = baseFreq * (0.8 + float64(i)/float64(numGrains-1)*0.5)
	}

	out := make([]float64, len(t))
	for _, chimeStart := range chimeTimes {
		detunes := make([]float64, numGrains)
		phases := make([]float64, numGrains)
		for i := range detunes {
			detunes[i] = (rng.Float64() - 0.5) * detuneRange
			phases[i] = rng.Float64() * twoPi
		}

		musical := tm.RealToMusical(chimeStart)
		section := tm.SectionAt(musical)
		var sectionGain float64
		switch {
		case section <= 1:
			sectionGain = distantGain
		case section == 2:
			sectionGain = 0.6
		case section <= 4:
			sectionGain = 0.8
		default:
			progress := tm.SectionProgress(musical, section)
			if progress < 0.8 {
				sectionGain = 1.0
			} else {
				c := math.Cos((progress - 0.8) / 0.2 * math.Pi * 0.5)
				sectionGain = distantGain + (1.0-distantGain)*c*c
			}
		}

		chimeEnd := chimeStart + numGrains*cascadeInterval + grainDuration*3.0
		i0 := int(math.Ceil(chimeStart * sampleRate))
		i1 := int(math.Ceil(chimeEnd * sampleRate))
		if i0 < 0 {
			i0 = 0
		}
		if i1 > len(t) {
			i1 = len(t)
		}
		for idx := i0; idx < i1; idx++ {
			time := t[idx]
			sinceChime := time - chimeStart

			value := 0.0
			for g := 0; g < numGrains; g++ {
				sinceGrain := sinceChime - float64(g)*cascadeInterval
				if sinceGrain < 0 {
					continue
				}
				envelope := math.Exp(-sinceGrain / grainDuration)
				if envelope < 0.001 {
					continue
				}
				freq := baseFreqs[g] + detunes[g]
				value += math.Sin(twoPi*freq*time+phases[g]) * envelope
			}
			out[idx] += value / numGrains * masterGain * sectionGain
		}
	}
	return out
}

// Jupiter renders the full cathedral piece: a cappella theme, organ pad,
// chime accents, then a compressor, cathedral reverb, and limiter on the
// mix bus. The render is lead-in + stretched cycle + tail padding long.
func Jupiter(sampleRate float64, rng *rand.Rand) ([]float64, error) {
	tm, err := JupiterTempoMap()
	if err != nil {
		return nil, err
	}

	duration := jupiterLeadIn + tm.CycleDuration() + jupiterTailPad
	n := int(duration * sampleRate)
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) / sampleRate
	}

	drone := jupiterDrone(t, tm)
	melody := jupiterMelodyLayer(t, tm)
	chime := jupiterChimes(t, tm, sampleRate, rng)

	mixed := make([]float64, n)
	for i := range mixed {
		mixed[i] = drone[i] + melody[i]*0.7 + chime[i]*0.8
	}

	comp := dsp.Compressor{
		ThresholdDB: -20, Ratio: 2.5, KneeDB: 6,
		AttackMs: 30, ReleaseMs: 250, AutoMakeup: true,
	}
	comp.Process(mixed, sampleRate)

	rev, err := dsp.NewReverb(dsp.CathedralReverb, sampleRate)
	if err != nil {
		return nil, err
	}
	out := rev.Process(mixed)

	dsp.Limiter(-1.0).Process(out, sampleRate)
	dsp.FadeTail(out, sampleRate, 2.0)
	dsp.Normalize(out, 0.9)
	return out, nil
}
