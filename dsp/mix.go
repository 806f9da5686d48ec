package dsp

import "math"

// SoftClip applies tanh saturation above the threshold while leaving the
// shape of quieter material untouched: out = tanh(x/th)·th. Operates in
// place and returns x for chaining.
func SoftClip(x []float64, threshold float64) []float64 {
	for i, v := range x {
		x[i] = math.Tanh(v/threshold) * threshold
	}
	return x
}

// SoftLimit squashes a single sample above ±threshold while passing quieter
// material untouched: out = th + (1−th)·tanh((|x|−th)/(1−th)). Output stays
// below 1 for any input. Used per sample on dense mixes where SoftClip
// would dull the quiet passages too.
func SoftLimit(v, threshold float64) float64 {
	a := math.Abs(v)
	if a <= threshold {
		return v
	}
	limited := threshold + (1.0-threshold)*math.Tanh((a-threshold)/(1.0-threshold))
	if v < 0 {
		return -limited
	}
	return limited
}

// Normalize scales x in place so its peak magnitude equals target. An
// all-zero buffer is returned unchanged rather than dividing by zero.
func Normalize(x []float64, target float64) []float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return x
	}
	gain := target / peak
	for i := range x {
		x[i] *= gain
	}
	return x
}

// LoopCrossfade blends the final fade seconds into the opening of the buffer
// with an equal-power curve and writes the blended block to both ends, so the
// last samples are bit-identical to the first and the loop point is
// inaudible. Buffers shorter than twice the fade are returned unchanged.
func LoopCrossfade(x []float64, sampleRate, fade float64) []float64 {
	n := int(fade * sampleRate)
	if n < 2 || len(x) < 2*n {
		return x
	}
	head := x[:n]
	tail := x[len(x)-n:]
	for i := 0; i < n; i++ {
		// Inclusive ramp: the last blended sample is pure head content, so
		// the wrap lands exactly on what the listener just heard.
		p := float64(i) / float64(n-1)
		s := math.Sin(0.5 * math.Pi * p)
		w := s * s
		blended := tail[i]*(1.0-w) + head[i]*w
		head[i] = blended
		tail[i] = blended
	}
	return x
}

// EdgeFade applies a sin² fade-in over the first `in` seconds and a cos²
// fade-out over the last `out` seconds, in place. Used when the looping
// strategy is silence-to-silence rather than crossfade-based.
func EdgeFade(x []float64, sampleRate, in, out float64) []float64 {
	nIn := int(in * sampleRate)
	nOut := int(out * sampleRate)
	if nIn+nOut >= len(x) {
		return x
	}
	if nIn > 1 {
		for i := 0; i < nIn; i++ {
			p := float64(i) / float64(nIn-1)
			s := math.Sin(0.5 * math.Pi * p)
			x[i] *= s * s
		}
	}
	if nOut > 1 {
		for i := 0; i < nOut; i++ {
			p := float64(i) / float64(nOut-1)
			c := math.Cos(0.5 * math.Pi * p)
			x[len(x)-nOut+i] *= c * c
		}
	}
	return x
}

// FadeTail applies only the closing cos² fade, for renders that start
// mid-phrase but must end in silence.
func FadeTail(x []float64, sampleRate, dur float64) []float64 {
	return EdgeFade(x, sampleRate, 0, dur)
}

// Pan splits a mono signal into left/right with an equal-power law.
// pos ranges -1 (hard left) to +1 (hard right).
func Pan(x []float64, pos float64) (left, right []float64) {
	if pos < -1 {
		pos = -1
	} else if pos > 1 {
		pos = 1
	}
	angle := (pos + 1.0) * 0.25 * math.Pi
	lg := math.Cos(angle)
	rg := math.Sin(angle)
	left = make([]float64, len(x))
	right = make([]float64, len(x))
	for i, v := range x {
		left[i] = v * lg
		right[i] = v * rg
	}
	return left, right
}

// MixInto adds src·gain into dst starting at offset samples, growing dst if
// the source runs past its end. Returns the (possibly reallocated) dst.
func MixInto(dst, src []float64, offset int, gain float64) []float64 {
	if need := offset + len(src); need > len(dst) {
		grown := make([]float64, need)
		copy(grown, dst)
		dst = grown
	}
	for i, v := range src {
		dst[offset+i] += v * gain
	}
	return dst
}
