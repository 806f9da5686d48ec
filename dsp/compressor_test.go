package dsp

import (
	"math"
	"testing"
)

const compTestRate = 48000.0

func sineBuffer(freq, amp float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(twoPi*freq*float64(i)/compTestRate)
	}
	return x
}

func TestCompressor_BelowThresholdUnchanged(t *testing.T) {
	t.Parallel()

	comp := Compressor{ThresholdDB: -20, Ratio: 4, KneeDB: 0, AttackMs: 10, ReleaseMs: 100}
	in := sineBuffer(1000, DBToLinear(-40), 4096)
	ref := append([]float64(nil), in...)

	comp.Process(in, compTestRate)

	ratio := RMS(in) / RMS(ref)
	if ratio < 0.95 || ratio > 1.05 {
		t.Errorf("signal 20 dB below threshold changed by factor %.3f", ratio)
	}
}

func TestCompressor_AboveThresholdReduced(t *testing.T) {
	t.Parallel()

	comp := Compressor{ThresholdDB: -20, Ratio: 4, KneeDB: 6, AttackMs: 10, ReleaseMs: 100}
	in := sineBuffer(1000, DBToLinear(-6), 48000)
	ref := append([]float64(nil), in...)

	comp.Process(in, compTestRate)

	// Skip the attack settle, then expect several dB of reduction.
	settled := in[4800:]
	refSettled := ref[4800:]
	reduction := LinearToDB(RMS(refSettled)) - LinearToDB(RMS(settled))
	if reduction < 3 {
		t.Errorf("only %.1f dB reduction on a signal 14 dB over threshold", reduction)
	}
}

func TestCompressor_AutoMakeupRaisesQuietSignal(t *testing.T) {
	t.Parallel()

	comp := Compressor{ThresholdDB: -20, Ratio: 2.5, KneeDB: 6, AttackMs: 30, ReleaseMs: 250, AutoMakeup: true}
	in := sineBuffer(440, DBToLinear(-40), 48000)
	ref := append([]float64(nil), in...)

	comp.Process(in, compTestRate)

	// Below threshold the gain is unity, so the output is the makeup alone:
	// -threshold·(1-1/ratio) = 12 dB for these settings.
	gainDB := LinearToDB(RMS(in)) - LinearToDB(RMS(ref))
	if math.Abs(gainDB-12) > 1 {
		t.Errorf("auto makeup %.1f dB, want ~12 dB", gainDB)
	}
}

func TestCompressor_ZeroesNonFiniteInput(t *testing.T) {
	t.Parallel()

	comp := Compressor{ThresholdDB: -20, Ratio: 4, AttackMs: 10, ReleaseMs: 100}
	in := []float64{0.1, math.NaN(), math.Inf(1), -0.1}
	comp.Process(in, compTestRate)
	if HasNonFinite(in) {
		t.Errorf("non-finite samples survived: %v", in)
	}
}

func TestLimiter_HoldsPeaksNearThreshold(t *testing.T) {
	t.Parallel()

	lim := Limiter(-1)
	in := sineBuffer(1000, 1.5, 48000)
	lim.Process(in, compTestRate)

	// After the 1 ms attack settles the output should sit near -1 dBFS.
	peak := Peak(in[4800:])
	ceiling := DBToLinear(-1)
	if peak > ceiling*1.15 {
		t.Errorf("peak %.3f well above the %.3f ceiling", peak, ceiling)
	}
	if peak < ceiling*0.5 {
		t.Errorf("peak %.3f oversquashed below half the ceiling", peak)
	}
}
