package dsp

import "math"

// Silence threshold in dB; anything quieter is reported as this floor.
const silenceFloorDB = -144.0

// Polynomial coefficients for a 5th-order log2 approximation over the
// mantissa range [0.5, 1.0).
//
//nolint:gochecknoglobals // Mathematical constants shared across FastLog2 calls
var log2Poly5 = []float64{
	-0.0821343513178931783,
	0.649732456739820052,
	-2.13417801862571777,
	4.08642207062728868,
	-1.51984215742349793,
}

// FastLog2 approximates log2(x) with a polynomial over the mantissa.
// Noticeably faster than math.Log2 at accuracy good enough for metering.
func FastLog2(x float64) float64 {
	if x <= 0 {
		return -math.Inf(1)
	}
	frac, exp := math.Frexp(x)
	m := log2Poly5[0]*frac + log2Poly5[1]
	m = m*frac + log2Poly5[2]
	m = m*frac + log2Poly5[3]
	m = m*frac + log2Poly5[4]
	return float64(exp-1) + m
}

// LinearToDB converts a linear amplitude to decibels: 20·log10(x).
// Non-positive input returns the silence floor.
func LinearToDB(linear float64) float64 {
	if linear <= 0 || math.IsNaN(linear) {
		return silenceFloorDB
	}
	// 20/log2(10) ≈ 6.020599913
	return FastLog2(linear) * 6.020599913
}

// DBToLinear converts decibels to a linear amplitude: 10^(dB/20).
func DBToLinear(db float64) float64 {
	return math.Pow(10.0, db/20.0)
}

// RMS returns the root-mean-square level of the buffer, 0 for an empty one.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// Peak returns the largest absolute sample value.
func Peak(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// HasNonFinite reports whether the buffer contains NaN or Inf samples.
// A render that produces one has a bug upstream; callers treat this as a
// hard error rather than writing a corrupt file.
func HasNonFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
