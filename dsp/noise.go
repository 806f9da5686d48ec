package dsp

import (
	"math"
	"math/rand"

	"github.com/mjibson/go-dsp/fft"
)

// WhiteNoise returns n samples of unit-variance Gaussian noise.
func WhiteNoise(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// PinkNoise generates 1/f noise with the Voss-McCartney construction: sources
// octave-spaced random values, where source i holds its value for 2^i samples
// before redrawing. The sum is normalized to peak 1.
func PinkNoise(rng *rand.Rand, n, sources int) []float64 {
	if sources < 1 {
		sources = 1
	}
	held := make([]float64, sources)
	for i := range held {
		held[i] = rng.NormFloat64()
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for s := 0; s < sources; s++ {
			period := 1 << uint(s)
			if i%period == 0 && i > 0 {
				held[s] = rng.NormFloat64()
			}
			sum += held[s]
		}
		out[i] = sum
	}
	Normalize(out, 1.0)
	return out
}

// SpectralPink shapes white noise into pink by dividing each frequency bin by
// √f. Slower than Voss-McCartney but spectrally exact; used where the 1/f
// slope matters more than generation speed.
func SpectralPink(rng *rand.Rand, n int, sampleRate float64) []float64 {
	white := WhiteNoise(rng, n)
	spectrum := fft.FFTReal(white)
	binWidth := sampleRate / float64(n)
	for i := range spectrum {
		// Mirror bins share the frequency of their conjugate partner.
		bin := i
		if bin > n/2 {
			bin = n - bin
		}
		f := float64(bin) * binWidth
		if f <= 0 {
			spectrum[i] = 0
			continue
		}
		spectrum[i] /= complex(math.Sqrt(f), 0)
	}
	inv := fft.IFFT(spectrum)
	out := make([]float64, n)
	for i, c := range inv {
		out[i] = real(c)
	}
	Normalize(out, 1.0)
	return out
}

// BandMask keeps the [lo, hi] Hz band of x and scales everything outside it
// by leak (0 removes it entirely). This is the cheap FFT band-limit used for
// wind and leaf textures, not a steep analog-style filter.
func BandMask(x []float64, sampleRate, lo, hi, leak float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	spectrum := fft.FFTReal(x)
	binWidth := sampleRate / float64(n)
	for i := range spectrum {
		bin := i
		if bin > n/2 {
			bin = n - bin
		}
		f := float64(bin) * binWidth
		if f < lo || f > hi {
			spectrum[i] *= complex(leak, 0)
		}
	}
	inv := fft.IFFT(spectrum)
	out := make([]float64, n)
	for i, c := range inv {
		out[i] = real(c)
	}
	return out
}
