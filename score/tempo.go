package score

import (
	"fmt"
	"math"
)

// TempoSection is one stretch of the musical timeline starting at a bar
// boundary. Tempo is a playback ratio relative to the nominal beat duration
// (1.0 = nominal, 0.8 = slower). If TempoEnd differs from Tempo the ratio
// ramps linearly across the section's real time.
type TempoSection struct {
	StartBar int
	Tempo    float64
	TempoEnd float64
}

func (s TempoSection) variable() bool {
	return s.TempoEnd != 0 && s.TempoEnd != s.Tempo
}

func (s TempoSection) endTempo() float64 {
	if s.TempoEnd != 0 {
		return s.TempoEnd
	}
	return s.Tempo
}

// averageTempo governs the section's real duration. For a linear ramp the
// time integral of tempo gives exactly the arithmetic mean.
func (s TempoSection) averageTempo() float64 {
	return (s.Tempo + s.endTempo()) / 2
}

// TempoMap converts between real (wall-clock) seconds and musical seconds
// for a piece whose tempo varies by section. Musical time advances at
// d(musical)/d(real) = tempo, so a constant-tempo section maps linearly and
// a ramped section follows the closed-form integral
//
//	musical_progress = (t0·p + (t1−t0)·p²/2) / ((t0+t1)/2)
//
// where p is the fraction of real time elapsed in the section.
//
// An intro rest of IntroRestBeats is skipped: real time 0 corresponds to
// musical time IntroRestBeats·BeatDuration. LeadIn seconds of silence sit
// before that; queries inside the lead-in return musical times counting
// backwards from the skipped rest.
type TempoMap struct {
	Sections       []TempoSection
	TotalBars      int
	BeatDuration   float64
	BeatsPerBar    float64
	IntroRestBeats float64
	LeadIn         float64

	musStart []float64 // musical start per section; [0] reflects the intro skip
	musEnd   []float64
	realEnd  []float64 // cumulative real end per section, excluding lead-in
}

// NewTempoMap validates the layout and precomputes section boundaries.
func NewTempoMap(m TempoMap) (*TempoMap, error) {
	if len(m.Sections) == 0 {
		return nil, fmt.Errorf("tempo: no sections")
	}
	if m.TotalBars < 1 {
		return nil, fmt.Errorf("tempo: total bars must be at least 1, got %d", m.TotalBars)
	}
	if m.BeatDuration <= 0 || m.BeatsPerBar <= 0 {
		return nil, fmt.Errorf("tempo: beat duration and beats per bar must be positive")
	}
	if m.IntroRestBeats < 0 || m.LeadIn < 0 {
		return nil, fmt.Errorf("tempo: intro rest and lead-in must be non-negative")
	}
	if m.Sections[0].StartBar != 1 {
		return nil, fmt.Errorf("tempo: first section must start at bar 1, got %d", m.Sections[0].StartBar)
	}
	variableCount := 0
	for i, s := range m.Sections {
		if s.Tempo <= 0 || s.endTempo() <= 0 {
			return nil, fmt.Errorf("tempo: section %d has non-positive tempo", i)
		}
		if i > 0 && s.StartBar <= m.Sections[i-1].StartBar {
			return nil, fmt.Errorf("tempo: section %d start bar %d does not advance", i, s.StartBar)
		}
		if s.StartBar > m.TotalBars {
			return nil, fmt.Errorf("tempo: section %d starts past the final bar", i)
		}
		if s.variable() {
			variableCount++
		}
	}
	if variableCount > 1 {
		return nil, fmt.Errorf("tempo: at most one ramped section is supported, got %d", variableCount)
	}

	barDur := m.BeatDuration * m.BeatsPerBar
	n := len(m.Sections)
	m.musStart = make([]float64, n)
	m.musEnd = make([]float64, n)
	m.realEnd = make([]float64, n)

	introMusical := m.IntroRestBeats * m.BeatDuration
	realAcc := 0.0
	for i, s := range m.Sections {
		m.musStart[i] = float64(s.StartBar-1) * barDur
		if i+1 < n {
			m.musEnd[i] = float64(m.Sections[i+1].StartBar-1) * barDur
		} else {
			m.musEnd[i] = float64(m.TotalBars) * barDur
		}
		musDur := m.musEnd[i] - m.musStart[i]
		if i == 0 {
			// Intro rest is skipped, so the first section is shorter.
			if introMusical >= musDur {
				return nil, fmt.Errorf("tempo: intro rest of %g beats exceeds the first section", m.IntroRestBeats)
			}
			m.musStart[0] = introMusical
			musDur = m.musEnd[0] - introMusical
		}
		realAcc += musDur / s.averageTempo()
		m.realEnd[i] = realAcc
	}
	return &m, nil
}

// BarDuration returns the nominal length of one bar in musical seconds.
func (m *TempoMap) BarDuration() float64 {
	return m.BeatDuration * m.BeatsPerBar
}

// MusicalLength returns the full musical timeline length in seconds.
func (m *TempoMap) MusicalLength() float64 {
	return float64(m.TotalBars) * m.BarDuration()
}

// CycleDuration returns the real length of the musical content, with the
// intro rest skipped and excluding the lead-in silence.
func (m *TempoMap) CycleDuration() float64 {
	return m.realEnd[len(m.realEnd)-1]
}

// RealToMusical maps a real time (including lead-in) to musical time.
// Times past the end clamp to the musical end.
func (m *TempoMap) RealToMusical(real float64) float64 {
	adjusted := real - m.LeadIn
	if adjusted < 0 {
		return m.musStart[0] + adjusted
	}
	for i, s := range m.Sections {
		if adjusted >= m.realEnd[i] {
			continue
		}
		realStart := 0.0
		if i > 0 {
			realStart = m.realEnd[i-1]
		}
		realDur := m.realEnd[i] - realStart
		musDur := m.musEnd[i] - m.musStart[i]
		p := 0.0
		if realDur > 0 {
			p = (adjusted - realStart) / realDur
		}
		if s.variable() {
			t0, t1 := s.Tempo, s.endTempo()
			unnormalized := t0*p + (t1-t0)*p*p/2
			return m.musStart[i] + unnormalized/s.averageTempo()*musDur
		}
		return m.musStart[i] + p*musDur
	}
	return m.musEnd[len(m.musEnd)-1]
}

// MusicalToReal is the inverse of RealToMusical for musical times at or
// after the skipped intro rest. Earlier musical times map into the lead-in.
func (m *TempoMap) MusicalToReal(musical float64) float64 {
	if musical < m.musStart[0] {
		return m.LeadIn + (musical - m.musStart[0])
	}
	for i, s := range m.Sections {
		if musical >= m.musEnd[i] && i+1 < len(m.Sections) {
			continue
		}
		realStart := 0.0
		if i > 0 {
			realStart = m.realEnd[i-1]
		}
		realDur := m.realEnd[i] - realStart
		musDur := m.musEnd[i] - m.musStart[i]
		q := 0.0
		if musDur > 0 {
			q = (musical - m.musStart[i]) / musDur
		}
		if q > 1 {
			q = 1
		}
		if s.variable() {
			// Invert t0·p + k·p²/2 = q·avg for p.
			t0 := s.Tempo
			k := s.endTempo() - t0
			p := (-t0 + math.Sqrt(t0*t0+2*k*q*s.averageTempo())) / k
			return m.LeadIn + realStart + p*realDur
		}
		return m.LeadIn + realStart + q*realDur
	}
	return m.LeadIn + m.CycleDuration()
}

// SectionAt returns the index of the section containing the given musical
// time, clamped to the first and last sections.
func (m *TempoMap) SectionAt(musical float64) int {
	bar := int(musical/m.BarDuration()) + 1
	if bar < 1 {
		bar = 1
	}
	if bar > m.TotalBars {
		bar = m.TotalBars
	}
	for i := len(m.Sections) - 1; i >= 0; i-- {
		if bar >= m.Sections[i].StartBar {
			return i
		}
	}
	return 0
}

// SectionProgress returns the fraction of the section's full musical span
// elapsed at the given musical time, clamped to [0,1]. The intro rest does
// not shorten the span here; progress is measured against bar boundaries.
func (m *TempoMap) SectionProgress(musical float64, section int) float64 {
	barDur := m.BarDuration()
	start := float64(m.Sections[section].StartBar-1) * barDur
	var end float64
	if section+1 < len(m.Sections) {
		end = float64(m.Sections[section+1].StartBar-1) * barDur
	} else {
		end = float64(m.TotalBars) * barDur
	}
	p := (musical - start) / (end - start)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
