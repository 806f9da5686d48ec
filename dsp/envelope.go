package dsp

import "math"

// Envelope maps elapsed note time to a gain factor. Implementations are
// stateless: the same (t, dur) always yields the same gain, so envelopes can
// be shared between voices and recomputed per note.
type Envelope interface {
	// Gain returns the envelope value for elapsed time t within a note of
	// total duration dur. Values are in [0, 1] (a piece may scale beyond 1
	// externally for climax emphasis).
	Gain(t, dur float64) float64
}

// ASR is an attack-sustain-release envelope with sin²/cos² edges. The attack
// fades in over Attack seconds, the level holds at 1.0 until dur, then the
// release fades out over Release seconds past the note end.
type ASR struct {
	Attack  float64
	Release float64
}

// Gain implements Envelope.
func (e ASR) Gain(t, dur float64) float64 {
	if t < 0 {
		return 0
	}
	if e.Attack > 0 && e.Attack < dur && t < e.Attack {
		s := math.Sin(t / e.Attack * math.Pi * 0.5)
		return s * s
	}
	if t < dur {
		return 1
	}
	if e.Release <= 0 {
		return 0
	}
	progress := (t - dur) / e.Release
	if progress >= 1 {
		return 0
	}
	if progress < 0 {
		progress = 0
	}
	c := math.Cos(progress * math.Pi * 0.5)
	return c * c
}

// ADR is the sustained-pad envelope used by the slow melodic voices:
// sin² attack, exponential decay while the note holds, and a cos² release
// that scales the decay level reached at the note end. The release therefore
// continues from wherever the decay left off instead of jumping back to 1.
type ADR struct {
	Attack  float64
	Decay   float64
	Release float64
}

// Gain implements Envelope.
func (e ADR) Gain(t, dur float64) float64 {
	if t < 0 {
		return 0
	}
	if e.Attack > 0 && e.Attack < dur && t < e.Attack {
		s := math.Sin(t / e.Attack * math.Pi * 0.5)
		return s * s
	}
	attack := e.Attack
	if attack >= dur {
		// Degenerate attack: treat the whole note as sustain.
		attack = 0
	}
	if t < dur {
		if e.Decay <= 0 {
			return 1
		}
		return math.Exp(-(t - attack) / e.Decay)
	}
	if e.Release <= 0 {
		return 0
	}
	progress := (t - dur) / e.Release
	if progress >= 1 {
		return 0
	}
	if progress < 0 {
		progress = 0
	}
	endLevel := 1.0
	if e.Decay > 0 {
		endLevel = math.Exp(-(dur - attack) / e.Decay)
	}
	c := math.Cos(progress * math.Pi * 0.5)
	return endLevel * c * c
}

// Pluck is the struck/plucked envelope family: a short attack, an exponential
// decay, and a forced fade to zero inside the last EndFade seconds of the note
// so a truncated tail never clicks.
//
// AttackPower selects the attack curve: 0 means the smooth sin² ramp, 1 a
// linear strike, and anything else the power curve (t/A)^p (0.7 reproduces
// the curved guitar pluck).
type Pluck struct {
	Attack      float64
	AttackPower float64
	Decay       float64
	EndFade     float64
	// CosineFade switches the end fade from linear to raised-cosine.
	CosineFade bool
}

// Gain implements Envelope.
func (e Pluck) Gain(t, dur float64) float64 {
	if t < 0 || t >= dur {
		return 0
	}
	v := 1.0
	attack := e.Attack
	if attack >= dur {
		attack = 0
	}
	switch {
	case attack > 0 && t < attack:
		p := t / attack
		switch e.AttackPower {
		case 0:
			s := math.Sin(p * math.Pi * 0.5)
			v = s * s
		case 1:
			v = p
		default:
			v = math.Pow(p, e.AttackPower)
		}
	case e.Decay > 0:
		v = math.Exp(-(t - attack) / e.Decay)
	}
	if e.EndFade > 0 && t >= dur-e.EndFade {
		r := (t - (dur - e.EndFade)) / e.EndFade
		if r > 1 {
			r = 1
		} else if r < 0 {
			r = 0
		}
		if e.CosineFade {
			v *= 0.5 * (1.0 + math.Cos(math.Pi*r))
		} else {
			v *= 1.0 - r
		}
	}
	if v < 0 {
		return 0
	}
	return v
}

// FadeOutTaper is the long-note "breathing out" multiplier applied by the
// sequencer when a note is flagged as fading: unity until half the note has
// passed, then a cosine glide down to a 0.3 floor.
func FadeOutTaper(progress float64) float64 {
	if progress <= 0.5 {
		return 1
	}
	p := (progress - 0.5) * 2.0
	if p > 1 {
		p = 1
	}
	return 0.3 + 0.7*(1.0+math.Cos(p*math.Pi))/2.0
}
