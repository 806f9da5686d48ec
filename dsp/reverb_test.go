package dsp

import (
	"math"
	"math/rand"
	"testing"
)

const reverbTestRate = 48000.0

func TestNewReverb_RejectsBadParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		params ReverbParams
	}{
		{"unstable decay", ReverbParams{RoomSize: 1, Decay: 1.0, Mix: 0.3}},
		{"negative decay", ReverbParams{RoomSize: 1, Decay: -0.1, Mix: 0.3}},
		{"damping high", ReverbParams{RoomSize: 1, Decay: 0.5, Damping: 1.5, Mix: 0.3}},
		{"mix high", ReverbParams{RoomSize: 1, Decay: 0.5, Mix: 1.5}},
		{"zero room", ReverbParams{RoomSize: 0, Decay: 0.5, Mix: 0.3}},
		{"negative predelay", ReverbParams{RoomSize: 1, Decay: 0.5, Mix: 0.3, Predelay: -0.01}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewReverb(tc.params, reverbTestRate); err == nil {
				t.Errorf("NewReverb(%+v) succeeded, want error", tc.params)
			}
		})
	}

	if _, err := NewReverb(WarmRoomReverb, 0); err == nil {
		t.Error("zero sample rate accepted")
	}
}

func TestReverb_PresetsConstruct(t *testing.T) {
	t.Parallel()

	for _, p := range []ReverbParams{WarmRoomReverb, CathedralReverb, MusicBoxReverb} {
		if _, err := NewReverb(p, reverbTestRate); err != nil {
			t.Errorf("preset %+v rejected: %v", p, err)
		}
	}
}

func TestReverb_ImpulseDecays(t *testing.T) {
	t.Parallel()

	rev, err := NewReverb(CathedralReverb, reverbTestRate)
	if err != nil {
		t.Fatal(err)
	}

	n := int(3 * reverbTestRate)
	impulse := make([]float64, n)
	impulse[0] = 1.0
	out := rev.Process(impulse)

	if len(out) != n {
		t.Fatalf("output length %d, want %d", len(out), n)
	}
	if HasNonFinite(out) {
		t.Fatal("impulse response contains non-finite samples")
	}

	head := RMS(out[:n/4])
	tail := RMS(out[3*n/4:])
	if tail >= head {
		t.Errorf("tail RMS %g not below head RMS %g, reverb not decaying", tail, head)
	}
}

func TestReverb_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	rev, err := NewReverb(WarmRoomReverb, reverbTestRate)
	if err != nil {
		t.Fatal(err)
	}
	in := make([]float64, 4096)
	for i := range in {
		in[i] = math.Sin(twoPi * 440 * float64(i) / reverbTestRate)
	}
	snapshot := append([]float64(nil), in...)

	rev.Process(in)
	for i := range in {
		if in[i] != snapshot[i] {
			t.Fatalf("input modified at sample %d", i)
		}
	}
}

func TestReverb_ZeroMixIsDry(t *testing.T) {
	t.Parallel()

	params := WarmRoomReverb
	params.Mix = 0
	rev, err := NewReverb(params, reverbTestRate)
	if err != nil {
		t.Fatal(err)
	}
	in := make([]float64, 2048)
	for i := range in {
		in[i] = math.Sin(twoPi * 220 * float64(i) / reverbTestRate)
	}
	out := rev.Process(in)
	for i := range out {
		if out[i] != in[i] {
			t.Fatalf("dry-only output differs at sample %d: %g != %g", i, out[i], in[i])
		}
	}
}

func TestReverb_AllpassChainPreservesEnergy(t *testing.T) {
	t.Parallel()

	// The allpass magnitude response is flat, so broadband noise keeps its
	// RMS through the whole diffuser chain apart from the prime transient.
	x := WhiteNoise(rand.New(rand.NewSource(9)), 1<<17)
	in := RMS(x)

	y := append([]float64(nil), x...)
	for _, delay := range reverbAllpassDelay {
		ap := newAllpassFilter(delay, allpassGain)
		for i, v := range y {
			y[i] = ap.tick(v)
		}
	}

	ratio := RMS(y) / in
	if ratio < 0.99 || ratio > 1.01 {
		t.Errorf("allpass chain RMS ratio %g, want within 1%% of unity", ratio)
	}
}

func TestCombDecayStep_StableBelowOne(t *testing.T) {
	t.Parallel()

	for _, p := range []ReverbParams{WarmRoomReverb, CathedralReverb, MusicBoxReverb} {
		step := CombDecayStep(p.Decay, p.Damping)
		if step >= 1 {
			t.Errorf("decay step %g for %+v, want < 1", step, p)
		}
	}
}
