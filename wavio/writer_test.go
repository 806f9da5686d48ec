package wavio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWriteFile_RoundTrip(t *testing.T) {
	t.Parallel()

	const rate = 48000
	n := 4800
	left := make([]float64, n)
	right := make([]float64, n)
	for i := range left {
		left[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/rate)
		right[i] = -left[i]
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := WriteFile(path, rate, left, right); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.Format.NumChannels; got != 2 {
		t.Fatalf("channels %d, want 2", got)
	}
	if got := buf.Format.SampleRate; got != rate {
		t.Fatalf("sample rate %d, want %d", got, rate)
	}
	if got := len(buf.Data); got != n*2 {
		t.Fatalf("sample count %d, want %d", got, n*2)
	}

	// Spot-check quantization: interleaved L/R within one LSB.
	for _, i := range []int{0, 100, 2399, n - 1} {
		wantL := int(left[i] * 32767)
		if got := buf.Data[i*2]; absInt(got-wantL) > 1 {
			t.Errorf("frame %d left: got %d, want %d", i, got, wantL)
		}
	}
}

func TestWriteFile_ClampsOverRange(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := WriteFile(path, 48000, []float64{2.0, -2.0, 0}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if buf.Data[0] != 32767 || buf.Data[1] != -32767 {
		t.Errorf("clamped samples %d/%d, want ±32767", buf.Data[0], buf.Data[1])
	}
}

func TestWriteFile_RejectsBadInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := WriteFile(filepath.Join(dir, "x.wav"), 48000); err == nil {
		t.Error("no channels accepted")
	}
	if err := WriteFile(filepath.Join(dir, "y.wav"), 48000,
		make([]float64, 10), make([]float64, 11)); err == nil {
		t.Error("mismatched channel lengths accepted")
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
