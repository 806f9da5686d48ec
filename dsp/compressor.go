package dsp

import "math"

// log2Of10Div20 converts dB values into the log2 domain: log2(10)/20.
const log2Of10Div20 = 0.166096404744

// Compressor is an offline soft-knee dynamics processor. Gain computation
// runs in the log2 domain: for a peak level above threshold,
// gain_log2 = 0.5·(delta − sqrt(delta² + kneeFactor)) scaled by
// (1 − 1/ratio), where delta = thresholdLog2 − peakLog2. A smoothed peak
// follower with separate attack and release time constants drives the gain.
type Compressor struct {
	ThresholdDB float64
	Ratio       float64 // e.g. 2.5 for 2.5:1; values below 1 behave as 1:1
	KneeDB      float64
	AttackMs    float64
	ReleaseMs   float64
	MakeupDB    float64
	AutoMakeup  bool
}

// Limiter returns a compressor configured as a brickwall-ish limiter: very
// high ratio, hard knee, fast attack.
func Limiter(thresholdDB float64) Compressor {
	return Compressor{
		ThresholdDB: thresholdDB,
		Ratio:       40.0,
		KneeDB:      1.0,
		AttackMs:    1.0,
		ReleaseMs:   50.0,
	}
}

// Process applies the compressor to x in place at the given sample rate and
// returns x. Non-finite input samples are zeroed before metering so one bad
// sample cannot poison the peak follower.
func (c Compressor) Process(x []float64, sampleRate float64) []float64 {
	ratio := c.Ratio
	if ratio < 1.0 {
		ratio = 1.0
	}
	attackMs := c.AttackMs
	if attackMs < 0.1 {
		attackMs = 0.1
	}
	releaseMs := c.ReleaseMs
	if releaseMs < 1.0 {
		releaseMs = 1.0
	}
	attackFactor := 1.0 - math.Exp(-math.Ln2/(attackMs*0.001*sampleRate))
	releaseFactor := math.Exp(-math.Ln2 / (releaseMs * 0.001 * sampleRate))

	kneeLog2 := 2.0 * log2Of10Div20 * c.KneeDB
	kneeFactor := kneeLog2 * kneeLog2
	thresholdLog2 := c.ThresholdDB * log2Of10Div20
	ratioScale := 1.0 - 1.0/ratio

	makeupDB := c.MakeupDB
	if c.AutoMakeup {
		makeupDB = -c.ThresholdDB * ratioScale
	}
	makeup := DBToLinear(makeupDB)

	peak := 0.0
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
			x[i] = 0
		}
		level := math.Abs(v)
		if level > peak {
			peak += (level - peak) * attackFactor
		} else {
			peak = level + (peak-level)*releaseFactor
		}

		gain := 1.0
		if peak > 0 {
			delta := thresholdLog2 - FastLog2(peak)
			if delta <= 0 {
				gainLog2 := 0.5 * (delta - math.Sqrt(delta*delta+kneeFactor))
				gain = math.Pow(2.0, gainLog2*ratioScale)
			}
		}
		x[i] = v * gain * makeup
	}
	return x
}
