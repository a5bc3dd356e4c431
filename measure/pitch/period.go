package pitch

// PeriodFromCrossings returns the mean distance in samples between rising
// zero crossings, located to sub-sample precision by linear interpolation.
// It returns 0 when fewer than two crossings are found.
func PeriodFromCrossings(signal []float64) float64 {
	first, last := -1.0, -1.0
	count := 0
	for i := 1; i < len(signal); i++ {
		prev, cur := signal[i-1], signal[i]
		if prev < 0 && cur >= 0 {
			pos := float64(i-1) + prev/(prev-cur)
			if first < 0 {
				first = pos
			}
			last = pos
			count++
		}
	}
	if count < 2 {
		return 0
	}
	return (last - first) / float64(count-1)
}

// PeriodFromWraps returns the mean distance in samples between falling
// steps larger than threshold, the resets of a rising ramp. It returns 0
// when fewer than two steps are found.
func PeriodFromWraps(signal []float64, threshold float64) float64 {
	first, last := -1, -1
	count := 0
	for i := 1; i < len(signal); i++ {
		if signal[i-1]-signal[i] > threshold {
			if first < 0 {
				first = i
			}
			last = i
			count++
		}
	}
	if count < 2 {
		return 0
	}
	return float64(last-first) / float64(count-1)
}

// Frequency converts a period in samples to Hz. A non-positive period
// yields 0.
func Frequency(period, sampleRate float64) float64 {
	if period <= 0 {
		return 0
	}
	return sampleRate / period
}
