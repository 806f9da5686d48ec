// Package score holds note data structures, musical timing, and the
// additive sequencer that turns scheduled notes into sample buffers.
package score

import "fmt"

// Note is one scheduled event on the musical grid. Bars are 1-indexed,
// beats are 0-based fractions within the bar.
type Note struct {
	Freq     float64
	Bar      int
	Beat     float64
	DurBeats float64
	Gain     float64 // 0 means the part default applies
	FadeOut  bool    // long sustain notes taper over their second half
	Breath   float64 // seconds trimmed off the sounding duration for phrasing
}

// Phrasing breath lengths in seconds.
const (
	BreathShort = 0.08
	BreathLong  = 0.15
)

// Common note durations in beats (3/4 and 4/4 grids).
const (
	Sixteenth    = 0.25
	Eighth       = 0.5
	DottedEighth = 0.75
	Quarter      = 1.0
	Half         = 2.0
	DottedHalf   = 3.0
)

// Equal-tempered pitch frequencies in Hz, A4 = 440.
const (
	C3  = 130.81
	D3  = 146.83
	E3  = 164.81
	G3  = 196.00
	A3  = 220.00
	B3  = 246.94
	C4  = 261.63
	Cs4 = 277.18
	D4  = 293.66
	E4  = 329.63
	F4  = 349.23
	Fs4 = 369.99
	G4  = 392.00
	A4  = 440.00
	Bb4 = 466.16
	B4  = 493.88
	C5  = 523.25
	Cs5 = 554.37
	D5  = 587.33
	E5  = 659.25
	F5  = 698.46
	Fs5 = 739.99
	G5  = 783.99
	A5  = 880.00
	Bb5 = 932.33
	B5  = 987.77
	C6  = 1046.50
	D6  = 1174.66
	E6  = 1318.51
	F6  = 1396.91
)

var pitchByName = map[string]float64{
	"C3": C3, "D3": D3, "E3": E3, "G3": G3, "A3": A3, "B3": B3,
	"C4": C4, "C#4": Cs4, "D4": D4, "E4": E4, "F4": F4, "F#4": Fs4,
	"G4": G4, "A4": A4, "Bb4": Bb4, "B4": B4,
	"C5": C5, "C#5": Cs5, "D5": D5, "E5": E5, "F5": F5, "F#5": Fs5,
	"G5": G5, "A5": A5, "Bb5": Bb5, "B5": B5,
	"C6": C6, "D6": D6, "E6": E6, "F6": F6,
}

// Pitch looks up a note name like "F#5" or "Bb4" and returns its frequency.
func Pitch(name string) (float64, error) {
	f, ok := pitchByName[name]
	if !ok {
		return 0, fmt.Errorf("score: unknown pitch %q", name)
	}
	return f, nil
}
