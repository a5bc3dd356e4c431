package level

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// ClipLevel is the absolute sample value above which a sample counts as
// clipped.
const ClipLevel = 1.0

// Stats holds the statistics of one channel.
type Stats struct {
	Frames        int
	DC            float64 // mean
	RMS           float64
	RMSdB         float64
	Peak          float64 // max(|max|, |min|)
	PeakdB        float64
	Max           float64
	Min           float64
	CrestFactor   float64 // peak / RMS, 0 for silence
	ZeroCrossings int
	Clipped       int
	Variance      float64
	Skewness      float64
	Kurtosis      float64 // excess
}

// Silent reports whether every metered sample was zero.
func (s Stats) Silent() bool { return s.Peak == 0 }

func (s Stats) String() string {
	return fmt.Sprintf("peak %.1f dBFS, rms %.1f dBFS, dc %+.4f, crest %.2f, zc %d, clipped %d",
		s.PeakdB, s.RMSdB, s.DC, s.CrestFactor, s.ZeroCrossings, s.Clipped)
}

// accumulator is a streaming Welford accumulator for one channel.
type accumulator struct {
	n             int
	mean          float64
	m2, m3, m4    float64
	sumSq         float64
	maxVal        float64
	minVal        float64
	zeroCrossings int
	clipped       int
	last          float64
}

func (a *accumulator) add(x float64) {
	a.n++
	ni := float64(a.n)

	delta := x - a.mean
	deltaN := delta / ni
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * float64(a.n-1)

	// M4 must be updated before M3, and M3 before M2.
	a.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
	a.m3 += term1*deltaN*(float64(a.n-1)-1) - 3*deltaN*a.m2
	a.m2 += term1
	a.mean += deltaN

	a.sumSq += x * x

	if a.n == 1 {
		a.maxVal, a.minVal = x, x
	} else {
		a.maxVal = math.Max(a.maxVal, x)
		a.minVal = math.Min(a.minVal, x)
		if a.last*x < 0 {
			a.zeroCrossings++
		}
	}
	if math.Abs(x) > ClipLevel {
		a.clipped++
	}
	a.last = x
}

func (a *accumulator) stats() Stats {
	if a.n == 0 {
		return Stats{RMSdB: math.Inf(-1), PeakdB: math.Inf(-1)}
	}

	nf := float64(a.n)
	rms := math.Sqrt(a.sumSq / nf)
	peak := math.Max(math.Abs(a.maxVal), math.Abs(a.minVal))

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	variance := a.m2 / nf
	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (a.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (a.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Frames:        a.n,
		DC:            a.mean,
		RMS:           rms,
		RMSdB:         core.LinearToDB(rms),
		Peak:          peak,
		PeakdB:        core.LinearToDB(peak),
		Max:           a.maxVal,
		Min:           a.minVal,
		CrestFactor:   crest,
		ZeroCrossings: a.zeroCrossings,
		Clipped:       a.clipped,
		Variance:      variance,
		Skewness:      skewness,
		Kurtosis:      kurtosis,
	}
}

// Meter accumulates per-channel statistics over interleaved blocks.
type Meter struct {
	acc []accumulator
}

// NewMeter returns a meter for the given channel count.
func NewMeter(channels int) (*Meter, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("level channel count must be > 0: %d", channels)
	}
	return &Meter{acc: make([]accumulator, channels)}, nil
}

// Channels returns the channel count.
func (m *Meter) Channels() int { return len(m.acc) }

// Update adds interleaved float32 frames. A trailing partial frame is
// ignored.
func (m *Meter) Update(buf []float32) {
	ch := len(m.acc)
	frames := len(buf) / ch
	for i := range frames {
		for c := range m.acc {
			m.acc[c].add(float64(buf[i*ch+c]))
		}
	}
}

// Update64 is Update for float64 frames.
func (m *Meter) Update64(buf []float64) {
	ch := len(m.acc)
	frames := len(buf) / ch
	for i := range frames {
		for c := range m.acc {
			m.acc[c].add(buf[i*ch+c])
		}
	}
}

// Channel returns the statistics of channel ch so far.
func (m *Meter) Channel(ch int) Stats {
	if ch < 0 || ch >= len(m.acc) {
		return Stats{RMSdB: math.Inf(-1), PeakdB: math.Inf(-1)}
	}
	return m.acc[ch].stats()
}

// Result returns the statistics of every channel.
func (m *Meter) Result() []Stats {
	out := make([]Stats, len(m.acc))
	for i := range m.acc {
		out[i] = m.acc[i].stats()
	}
	return out
}

// Reset clears all accumulators.
func (m *Meter) Reset() {
	clear(m.acc)
}
