package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [lo, hi].
// NaN is mapped to lo so that a bad control value can never reach the
// signal path.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo || math.IsNaN(value) {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Feedback paths (biquad history, release tails) call this to avoid
// denormal slowdowns once the signal has decayed.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// WrapPhase maps a normalized phase onto [0, 1).
// Increments of any sign and size are handled without drift beyond
// floating-point rounding.
func WrapPhase(phase float64) float64 {
	if phase >= 0 && phase < 1 {
		return phase
	}

	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		return 0
	}

	phase -= math.Floor(phase)
	if phase >= 1 {
		// -tiny - floor(-tiny) rounds up to exactly 1.
		return 0
	}

	return phase
}

// SemitonesToRatio converts an interval in equal-tempered semitones to a
// frequency ratio.
func SemitonesToRatio(semitones float64) float64 {
	return math.Exp2(semitones / 12)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
