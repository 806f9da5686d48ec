package pieces

import (
	"math"
	"math/rand"
	"testing"

	"github.com/azu-azu/tsukisound/dsp"
)

// A low test rate keeps the full-piece renders fast; the pipelines are
// sample-rate relative throughout.
const pieceTestRate = 8000.0

func TestMoonlitGymnopedie(t *testing.T) {
	t.Parallel()

	out, err := MoonlitGymnopedie(pieceTestRate)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Fatal("empty render")
	}
	if dsp.HasNonFinite(out) {
		t.Fatal("non-finite samples")
	}
	if p := dsp.Peak(out); math.Abs(p-0.9) > 1e-9 {
		t.Errorf("peak %g, want 0.9 after final normalize", p)
	}

	// The loop crossfade writes the blended block to both ends.
	n := int(0.1 * pieceTestRate)
	for i := 0; i < n; i++ {
		if out[i] != out[len(out)-n+i] {
			t.Fatalf("loop seam mismatch at offset %d", i)
		}
	}
}

func TestAcousticGymnopedie(t *testing.T) {
	t.Parallel()

	out, err := AcousticGymnopedie(pieceTestRate, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	if dsp.HasNonFinite(out) {
		t.Fatal("non-finite samples")
	}
	if out[0] != 0 {
		t.Errorf("edge fade-in missing: first sample %g", out[0])
	}
	if last := out[len(out)-1]; math.Abs(last) > 1e-9 {
		t.Errorf("edge fade-out missing: last sample %g", last)
	}

	again, err := AcousticGymnopedie(pieceTestRate, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	for i := range out {
		if out[i] != again[i] {
			t.Fatalf("same seed diverged at sample %d", i)
		}
	}
}

func TestMusicBox(t *testing.T) {
	t.Parallel()

	out, err := MusicBox(pieceTestRate)
	if err != nil {
		t.Fatal(err)
	}
	if dsp.HasNonFinite(out) {
		t.Fatal("non-finite samples")
	}
	if p := dsp.Peak(out); math.Abs(p-0.9) > 1e-9 {
		t.Errorf("peak %g, want 0.9", p)
	}
	// 32 bars of 3/4 at 60 BPM.
	if want := int(32 * 3.0 * pieceTestRate); len(out) != want {
		t.Errorf("length %d, want %d", len(out), want)
	}
}

func TestAcousticJupiter(t *testing.T) {
	t.Parallel()

	out, err := AcousticJupiter(pieceTestRate, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	if dsp.HasNonFinite(out) {
		t.Fatal("non-finite samples")
	}
	if p := dsp.Peak(out); math.Abs(p-0.9) > 1e-9 {
		t.Errorf("peak %g, want 0.9 after final normalize", p)
	}

	tm, err := JupiterTempoMap()
	if err != nil {
		t.Fatal(err)
	}
	// Lead-in plus the stretched cycle plus room for the reverb tail.
	if want := int((0.5 + tm.CycleDuration() + 2.0) * pieceTestRate); len(out) != want {
		t.Errorf("length %d, want %d", len(out), want)
	}
	if out[0] != 0 {
		t.Errorf("edge fade-in missing: first sample %g", out[0])
	}
	if last := out[len(out)-1]; math.Abs(last) > 1e-9 {
		t.Errorf("edge fade-out missing: last sample %g", last)
	}

	again, err := AcousticJupiter(pieceTestRate, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	for i := range out {
		if out[i] != again[i] {
			t.Fatalf("same seed diverged at sample %d", i)
		}
	}
}

func TestJupiterTempoMap(t *testing.T) {
	t.Parallel()

	tm, err := JupiterTempoMap()
	if err != nil {
		t.Fatal(err)
	}
	// Hand-computed from the section layout: musical spans over their
	// average ratios, with the two-beat intro rest skipped.
	want := 12.5 + 12.0 + 120.0/11.0 + 10.0 + 10.0 + 15.0/1.1
	if got := tm.CycleDuration(); math.Abs(got-want) > 1e-9 {
		t.Errorf("cycle duration %g, want %g", got, want)
	}
	if got := tm.MusicalLength(); got != 75.0 {
		t.Errorf("musical length %g, want 75", got)
	}
}

func TestJupiter(t *testing.T) {
	t.Parallel()

	out, err := Jupiter(pieceTestRate, rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatal(err)
	}
	if dsp.HasNonFinite(out) {
		t.Fatal("non-finite samples")
	}
	if p := dsp.Peak(out); math.Abs(p-0.9) > 1e-9 {
		t.Errorf("peak %g, want 0.9", p)
	}

	tm, err := JupiterTempoMap()
	if err != nil {
		t.Fatal(err)
	}
	want := int((0.5 + tm.CycleDuration() + 1.0) * pieceTestRate)
	if len(out) != want {
		t.Errorf("length %d, want %d", len(out), want)
	}
	// The tail fade ends in silence.
	if last := out[len(out)-1]; math.Abs(last) > 1e-9 {
		t.Errorf("last sample %g, want 0", last)
	}
}
