package dsp

import (
	"math"
	"math/rand"
	"testing"
)

func TestWhiteNoise_Deterministic(t *testing.T) {
	t.Parallel()

	a := WhiteNoise(rand.New(rand.NewSource(42)), 1024)
	b := WhiteNoise(rand.New(rand.NewSource(42)), 1024)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at sample %d", i)
		}
	}
}

func TestPinkNoise_NormalizedAndFinite(t *testing.T) {
	t.Parallel()

	x := PinkNoise(rand.New(rand.NewSource(1)), 1<<15, 16)
	if HasNonFinite(x) {
		t.Fatal("pink noise contains non-finite samples")
	}
	if p := Peak(x); math.Abs(p-1.0) > 1e-9 {
		t.Errorf("peak %g, want 1", p)
	}
}

func TestSpectralPink_RollsOffHighs(t *testing.T) {
	t.Parallel()

	const rate = 48000.0
	x := SpectralPink(rand.New(rand.NewSource(3)), 1<<15, rate)
	if HasNonFinite(x) {
		t.Fatal("non-finite samples")
	}

	// Low band should carry more energy than an equally wide high band.
	low := Filter(append([]float64(nil), x...), NewLowPass(rate, 500, 0.707))
	high := Filter(append([]float64(nil), x...), NewHighPass(rate, 8000, 0.707))
	if RMS(low) <= RMS(high) {
		t.Errorf("low band RMS %g not above high band RMS %g", RMS(low), RMS(high))
	}
}

func TestBandMask_RemovesOutOfBand(t *testing.T) {
	t.Parallel()

	const rate = 48000.0
	n := 1 << 14
	tone := make([]float64, n)
	for i := range tone {
		tone[i] = math.Sin(twoPi * 100 * float64(i) / rate)
	}
	masked := BandMask(tone, rate, 3000, 9000, 0)
	if got := RMS(masked); got > 0.01 {
		t.Errorf("100 Hz tone survived a 3-9 kHz mask: RMS %g", got)
	}

	inBand := make([]float64, n)
	for i := range inBand {
		inBand[i] = math.Sin(twoPi * 5000 * float64(i) / rate)
	}
	kept := BandMask(inBand, rate, 3000, 9000, 0)
	if got := RMS(kept); got < 0.5 {
		t.Errorf("5 kHz tone attenuated inside its band: RMS %g", got)
	}
}

func TestLinearSweepAndPhase(t *testing.T) {
	t.Parallel()

	freqs := LinearSweep(100, 200, 5)
	want := []float64{100, 125, 150, 175, 200}
	for i := range want {
		if math.Abs(freqs[i]-want[i]) > 1e-9 {
			t.Errorf("sweep[%d]=%g, want %g", i, freqs[i], want[i])
		}
	}

	phase := SweepPhase(freqs, 48000)
	for i := 1; i < len(phase); i++ {
		if phase[i] <= phase[i-1] {
			t.Fatalf("phase not increasing at %d", i)
		}
	}
}
