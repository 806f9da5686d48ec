package dsp

import (
	"math"
	"testing"
)

func TestFastLog2_MatchesMathLog2(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0.001, 0.01, 0.25, 0.5, 1, 2, 3.7, 100, 1e6} {
		got := FastLog2(v)
		want := math.Log2(v)
		if math.Abs(got-want) > 1e-4 {
			t.Errorf("FastLog2(%g)=%g, want %g", v, got, want)
		}
	}
}

func TestLinearToDB(t *testing.T) {
	t.Parallel()

	if got := LinearToDB(1.0); math.Abs(got) > 1e-4 {
		t.Errorf("0 dBFS: got %g", got)
	}
	if got := LinearToDB(0.5); math.Abs(got+6.0206) > 0.01 {
		t.Errorf("half scale: got %g, want -6.02", got)
	}
	if got := LinearToDB(0); got > -144 {
		t.Errorf("silence floor: got %g", got)
	}
	if got := LinearToDB(math.NaN()); got > -144 {
		t.Errorf("NaN input: got %g, want silence floor", got)
	}
}

func TestDBRoundTrip(t *testing.T) {
	t.Parallel()

	for _, db := range []float64{-60, -20, -6, -1, 0} {
		lin := DBToLinear(db)
		back := LinearToDB(lin)
		if math.Abs(back-db) > 0.001 {
			t.Errorf("%g dB round-tripped to %g", db, back)
		}
	}
}

func TestRMSAndPeak(t *testing.T) {
	t.Parallel()

	if got := RMS(nil); got != 0 {
		t.Errorf("RMS(nil)=%g", got)
	}
	dc := []float64{0.5, 0.5, 0.5, 0.5}
	if got := RMS(dc); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("DC RMS %g, want 0.5", got)
	}

	n := 48000
	sine := make([]float64, n)
	for i := range sine {
		sine[i] = math.Sin(twoPi * 100 * float64(i) / 48000.0)
	}
	if got := RMS(sine); math.Abs(got-1/math.Sqrt2) > 1e-3 {
		t.Errorf("sine RMS %g, want %g", got, 1/math.Sqrt2)
	}
	if got := Peak(sine); math.Abs(got-1) > 1e-6 {
		t.Errorf("sine peak %g, want 1", got)
	}
}

func TestHasNonFinite(t *testing.T) {
	t.Parallel()

	if HasNonFinite([]float64{0, 1, -1}) {
		t.Error("finite buffer flagged")
	}
	if !HasNonFinite([]float64{0, math.NaN()}) {
		t.Error("NaN missed")
	}
	if !HasNonFinite([]float64{math.Inf(-1)}) {
		t.Error("Inf missed")
	}
}
