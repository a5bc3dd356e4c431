package report

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
)

const (
	// filterSettleLevel is the impulse response magnitude, relative to its
	// peak, below which a section counts as settled.
	filterSettleLevel = 1e-4

	filterSweepPoints = 256
	filterSweepLow    = 10.0
)

// FilterStats describes the static response of one biquad section.
type FilterStats struct {
	SampleRate   float64
	Cutoff       float64 // Hz
	DCGaindB     float64
	CutoffGaindB float64
	CutoffPhase  float64 // degrees
	PeakHz       float64
	PeakdB       float64
	PoleRadius   float64
	PoleHz       float64
	Stable       bool
	Overshoot    float64 // step response peak above its final value, percent
	SettleFrames int     // -1 when the impulse response outlasts one second
}

// AnalyzeFilter measures c at cutoff: gain and phase there, the resonant
// peak of a log sweep, the dominant pole, and the step and impulse
// responses over one second.
func AnalyzeFilter(c biquad.Coefficients, cutoff, sampleRate float64) FilterStats {
	s := FilterStats{
		SampleRate:   sampleRate,
		Cutoff:       cutoff,
		DCGaindB:     20 * math.Log10(math.Abs(c.DCGain())),
		CutoffGaindB: c.MagnitudeDB(cutoff, sampleRate),
		CutoffPhase:  c.Phase(cutoff, sampleRate) * 180 / math.Pi,
		PeakdB:       math.Inf(-1),
		Stable:       c.Stable(),
	}

	hi := 0.49 * sampleRate
	for i := range filterSweepPoints {
		f := filterSweepLow * math.Pow(hi/filterSweepLow, float64(i)/(filterSweepPoints-1))
		if db := c.MagnitudeDB(f, sampleRate); db > s.PeakdB {
			s.PeakHz, s.PeakdB = f, db
		}
	}

	for _, p := range c.PoleZeroPair().Poles {
		if r := cmplx.Abs(p); r >= s.PoleRadius {
			s.PoleRadius = r
			s.PoleHz = math.Abs(cmplx.Phase(p)) * sampleRate / (2 * math.Pi)
		}
	}

	n := max(int(sampleRate), 1)
	sec := biquad.NewSection(c)
	s.SettleFrames = settleFrames(sec.ImpulseResponse(n))

	step := make([]float64, n)
	for i := range step {
		step[i] = 1
	}
	sec.ProcessBlock(step)
	if dc := c.DCGain(); dc != 0 {
		s.Overshoot = max(slices.Max(step)/dc-1, 0) * 100
	}
	return s
}

// settleFrames returns the index after the last sample of ir above
// filterSettleLevel of its peak, or -1 if that is the final sample.
func settleFrames(ir []float64) int {
	var peak float64
	for _, v := range ir {
		peak = max(peak, math.Abs(v))
	}
	limit := peak * filterSettleLevel
	for i := len(ir) - 1; i >= 0; i-- {
		if math.Abs(ir[i]) > limit {
			if i == len(ir)-1 {
				return -1
			}
			return i + 1
		}
	}
	return 0
}

// Filter writes s as two report lines.
func Filter(w io.Writer, s FilterStats) error {
	stability := "stable"
	if !s.Stable {
		stability = "unstable"
	}
	settle := "> 1 s"
	if s.SettleFrames >= 0 {
		settle = fmt.Sprintf("%d frames (%.2f ms)", s.SettleFrames, 1000*float64(s.SettleFrames)/s.SampleRate)
	}
	_, err := fmt.Fprintf(w,
		"filter: cutoff %.1f Hz, %s dB at cutoff, phase %.1f deg, peak %s dB at %.1f Hz, dc %s dB\n"+
			"filter: pole r=%.4f at %.1f Hz (%s), step overshoot %.1f%%, settle %s\n",
		s.Cutoff, dB(s.CutoffGaindB), s.CutoffPhase, dB(s.PeakdB), s.PeakHz, dB(s.DCGaindB),
		s.PoleRadius, s.PoleHz, stability, s.Overshoot, settle)
	return err
}
