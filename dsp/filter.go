package dsp

import "math"

// Biquad is a direct-form-I second-order IIR section (RBJ cookbook
// coefficients). The ambience generators cascade these to approximate the
// Butterworth responses used to color their noise layers.
type Biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64
}

func newBiquad(b0, b1, b2, a0, a1, a2 float64) *Biquad {
	return &Biquad{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
	}
}

// NewLowPass builds a low-pass biquad with the given cutoff and Q.
func NewLowPass(sampleRate, cutoff, q float64) *Biquad {
	w0 := twoPi * cutoff / sampleRate
	cosW, sinW := math.Cos(w0), math.Sin(w0)
	alpha := sinW / (2.0 * q)
	return newBiquad(
		(1-cosW)/2, 1-cosW, (1-cosW)/2,
		1+alpha, -2*cosW, 1-alpha,
	)
}

// NewHighPass builds a high-pass biquad with the given cutoff and Q.
func NewHighPass(sampleRate, cutoff, q float64) *Biquad {
	w0 := twoPi * cutoff / sampleRate
	cosW, sinW := math.Cos(w0), math.Sin(w0)
	alpha := sinW / (2.0 * q)
	return newBiquad(
		(1+cosW)/2, -(1 + cosW), (1+cosW)/2,
		1+alpha, -2*cosW, 1-alpha,
	)
}

// NewBandPass builds a constant-peak band-pass biquad centered between lo and
// hi Hz.
func NewBandPass(sampleRate, lo, hi float64) *Biquad {
	center := math.Sqrt(lo * hi)
	bw := hi - lo
	q := center / bw
	w0 := twoPi * center / sampleRate
	cosW, sinW := math.Cos(w0), math.Sin(w0)
	alpha := sinW / (2.0 * q)
	return newBiquad(
		alpha, 0, -alpha,
		1+alpha, -2*cosW, 1-alpha,
	)
}

// Tick advances the filter by one sample.
func (f *Biquad) Tick(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// Reset clears the filter history.
func (f *Biquad) Reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

// Filter runs x through the given sections in series, in place, and returns x.
func Filter(x []float64, sections ...*Biquad) []float64 {
	for _, s := range sections {
		for i, v := range x {
			x[i] = s.Tick(v)
		}
	}
	return x
}
