package ambience

import (
	"math"
	"math/rand"

	"github.com/azu-azu/tsukisound/dsp"
)

const (
	bubbleCount  = 6
	bubbleMinGap = 2.5 // seconds between event starts
)

// Bubbles places a handful of triple-"poko" events across a stereo loop,
// each a rising low tone popped three times with widening gaps.
func Bubbles(sampleRate, duration float64, rng *rand.Rand) (left, right []float64) {
	n := int(duration * sampleRate)
	left = make([]float64, n)
	right = make([]float64, n)

	minGap := int(bubbleMinGap * sampleRate)
	var starts []int
	for b := 0; b < bubbleCount; b++ {
		event := bubbleEvent(sampleRate, rng)
		l, r := dsp.Pan(event, uniform(rng, -0.7, 0.7))

		// A candidate must both fit the buffer and clear the minimum gap;
		// only placed events reserve a gap window. Short loops may not fit
		// every event, so give up rather than searching forever.
		start := -1
		for attempt := 0; attempt < 1000; attempt++ {
			candidate := rng.Intn(n)
			if candidate+len(event) >= n {
				continue
			}
			spaced := true
			for _, s := range starts {
				if abs(candidate-s) <= minGap {
					spaced = false
					break
				}
			}
			if spaced {
				start = candidate
				break
			}
		}
		if start < 0 {
			continue
		}
		starts = append(starts, start)

		for i := range event {
			left[start+i] += l[i]
			right[start+i] += r[i]
		}
	}

	peak := dsp.Peak(left)
	if p := dsp.Peak(right); p > peak {
		peak = p
	}
	if peak > 0 {
		scale := 1.0 / (peak * 1.2)
		for i := range left {
			left[i] *= scale
			right[i] *= scale
		}
	}
	return left, right
}

// bubbleEvent is one poko...poko...poko group, normalized then trimmed to a
// quiet per-event level.
func bubbleEvent(sampleRate float64, rng *rand.Rand) []float64 {
	pokos := [][]float64{
		poko(sampleRate, rng, 1.0),
		poko(sampleRate, rng, uniform(rng, 0.9, 1.0)),
		poko(sampleRate, rng, uniform(rng, 0.45, 0.7)),
	}
	offsets := []int{
		0,
		int(uniform(rng, 0.120, 0.250) * sampleRate),
		int(uniform(rng, 0.300, 0.500) * sampleRate),
	}

	total := 0
	for i, p := range pokos {
		if end := offsets[i] + len(p); end > total {
			total = end
		}
	}
	mono := make([]float64, total)
	for i, p := range pokos {
		for j, v := range p {
			mono[offsets[i]+j] += v
		}
	}
	dsp.Normalize(mono, uniform(rng, 0.18, 0.32))
	return mono
}

func poko(sampleRate float64, rng *rand.Rand, amp float64) []float64 {
	dur := uniform(rng, 0.04, 0.09)
	n := int(dur * sampleRate)

	fStart := uniform(rng, 120, 220)
	fEnd := fStart * uniform(rng, 1.3, 1.8)
	phase := dsp.SweepPhase(dsp.LinearSweep(fStart, fEnd, n), sampleRate)

	attackLen := int(float64(n) * 0.07)
	if attackLen < 1 {
		attackLen = 1
	}
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		x := math.Sin(phase[i])*0.85 + rng.NormFloat64()*0.12
		env := math.Exp(-2.8 * t / dur)
		if i < attackLen && attackLen > 1 {
			env *= float64(i) / float64(attackLen-1)
		}
		out[i] = x * env * amp
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
