package dsp

import (
	"math"
	"math/rand"
	"testing"
)

func TestSoftClip_Bounded(t *testing.T) {
	t.Parallel()

	x := []float64{-3, -1.2, -0.5, 0, 0.01, 0.9, 1.5, 4}
	SoftClip(x, 0.9)
	for i, v := range x {
		if math.Abs(v) >= 0.9 {
			t.Errorf("sample %d: %g not inside ±0.9", i, v)
		}
	}
	// Quiet material passes nearly unchanged.
	small := []float64{0.05}
	SoftClip(small, 0.9)
	if math.Abs(small[0]-0.05) > 0.001 {
		t.Errorf("quiet sample distorted: %g", small[0])
	}
}

func TestSoftLimit(t *testing.T) {
	t.Parallel()

	const th = 0.8
	if got := SoftLimit(0.5, th); got != 0.5 {
		t.Errorf("below threshold altered: %g", got)
	}
	if got := SoftLimit(-0.5, th); got != -0.5 {
		t.Errorf("negative below threshold altered: %g", got)
	}
	for _, v := range []float64{0.9, 1.5, 10, 1e6} {
		got := SoftLimit(v, th)
		if got <= th || got >= 1 {
			t.Errorf("SoftLimit(%g)=%g, want in (%g, 1)", v, got, th)
		}
		if neg := SoftLimit(-v, th); neg != -got {
			t.Errorf("asymmetric: SoftLimit(-%g)=%g, want %g", v, neg, -got)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	x := []float64{0.1, -0.5, 0.25}
	Normalize(x, 0.9)
	if got := Peak(x); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("peak after normalize: %g, want 0.9", got)
	}

	zeros := make([]float64, 16)
	Normalize(zeros, 0.9)
	for i, v := range zeros {
		if v != 0 {
			t.Fatalf("all-zero buffer changed at %d: %g", i, v)
		}
	}
}

func TestLoopCrossfade_SeamIdentity(t *testing.T) {
	t.Parallel()

	const rate = 48000.0
	rng := rand.New(rand.NewSource(7))
	x := WhiteNoise(rng, int(2*rate))
	LoopCrossfade(x, rate, 0.1)

	n := int(0.1 * rate)
	head := x[:n]
	tail := x[len(x)-n:]
	for i := 0; i < n; i++ {
		if head[i] != tail[i] {
			t.Fatalf("seam mismatch at %d: head %g, tail %g", i, head[i], tail[i])
		}
	}
}

func TestLoopCrossfade_ShortBufferUnchanged(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, 3, 4}
	snapshot := append([]float64(nil), x...)
	LoopCrossfade(x, 48000, 0.1)
	for i := range x {
		if x[i] != snapshot[i] {
			t.Fatalf("short buffer modified at %d", i)
		}
	}
}

func TestEdgeFade_EndsAtZero(t *testing.T) {
	t.Parallel()

	const rate = 48000.0
	x := make([]float64, int(5*rate))
	for i := range x {
		x[i] = 1
	}
	EdgeFade(x, rate, 0.8, 3.0)

	if x[0] != 0 {
		t.Errorf("fade-in start: %g, want 0", x[0])
	}
	if got := x[len(x)-1]; math.Abs(got) > 1e-12 {
		t.Errorf("fade-out end: %g, want 0", got)
	}
	mid := x[int(1.5*rate)]
	if mid != 1 {
		t.Errorf("body attenuated: %g, want 1", mid)
	}
}

func TestPan_EqualPower(t *testing.T) {
	t.Parallel()

	x := []float64{1}
	for _, pos := range []float64{-1, -0.5, 0, 0.5, 1} {
		l, r := Pan(x, pos)
		power := l[0]*l[0] + r[0]*r[0]
		if math.Abs(power-1) > 1e-12 {
			t.Errorf("pan %g: power %g, want 1", pos, power)
		}
	}
	l, r := Pan(x, -1)
	if math.Abs(l[0]-1) > 1e-12 || math.Abs(r[0]) > 1e-12 {
		t.Errorf("hard left: l=%g r=%g", l[0], r[0])
	}
}

func TestMixInto_GrowsAndAdds(t *testing.T) {
	t.Parallel()

	dst := []float64{1, 1}
	dst = MixInto(dst, []float64{2, 2, 2}, 1, 0.5)
	want := []float64{1, 2, 1, 1}
	if len(dst) != len(want) {
		t.Fatalf("length %d, want %d", len(dst), len(want))
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d]=%g, want %g", i, dst[i], want[i])
		}
	}
}
