package filter

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
	"github.com/cwbudde/algo-synth/dsp/filter/design/pass"
)

const (
	// Channels is the number of interleaved channels ProcessBuffer filters.
	Channels = 2

	// Hysteresis is the cutoff movement in Hz that triggers a redesign.
	Hysteresis = 100.0

	// LFODepth is the cutoff swing in Hz at AutoAmount 1.
	LFODepth = 5000.0

	// MinCutoff and MaxCutoff bound the modulated cutoff.
	MinCutoff = 20.0
	MaxCutoff = 20000.0
)

// Settings are the per-buffer filter controls.
type Settings struct {
	Cutoff     float64 // base cutoff in Hz
	Resonance  float64 // 0..0.99
	AutoAmount float64 // LFO depth, 1 = ±LFODepth Hz
	AutoFreq   float64 // LFO rate in Hz
}

// Filter is a stereo LFO-modulated resonant low-pass.
type Filter struct {
	sampleRate float64
	coeffs     biquad.Coefficients
	state      [Channels]biquad.State

	lfoPhase      float64
	lastCutoff    float64
	lastResonance float64
}

// New returns a filter with zero history and LFO phase 0. The first
// processed frame designs the coefficients.
func New(sampleRate float64) (*Filter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("filter sample rate must be > 0 and finite: %f", sampleRate)
	}
	return &Filter{
		sampleRate: sampleRate,
		coeffs:     biquad.Coefficients{B0: 1},
		lastCutoff: -1,
	}, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Cutoff returns the cutoff of the current coefficients, or -1 before the
// first design.
func (f *Filter) Cutoff() float64 { return f.lastCutoff }

// Coefficients returns the coefficients in use.
func (f *Filter) Coefficients() biquad.Coefficients { return f.coeffs }

// LFOPhase returns the LFO phase in [0, 1).
func (f *Filter) LFOPhase() float64 { return f.lfoPhase }

// Reset clears channel history, rewinds the LFO and forces a redesign on
// the next frame.
func (f *Filter) Reset() {
	for ch := range f.state {
		f.state[ch].Reset()
	}
	f.lfoPhase = 0
	f.lastCutoff = -1
	f.coeffs = biquad.Coefficients{B0: 1}
}

// ModulatedCutoff returns the effective cutoff for a base cutoff, LFO
// phase and depth, clamped to [MinCutoff, MaxCutoff].
func ModulatedCutoff(base, lfoPhase, autoAmount float64) float64 {
	mod := math.Sin(2*math.Pi*lfoPhase) * autoAmount * LFODepth
	return core.Clamp(base+mod, MinCutoff, MaxCutoff)
}

// ProcessBuffer filters numFrames interleaved stereo frames in place.
// numFrames is clamped to len(buf)/Channels.
func (f *Filter) ProcessBuffer(buf []float64, numFrames int, s Settings) {
	if numFrames > len(buf)/Channels {
		numFrames = len(buf) / Channels
	}
	lfoInc := s.AutoFreq / f.sampleRate
	if math.IsNaN(lfoInc) || math.IsInf(lfoInc, 0) {
		lfoInc = 0
	}
	resonance := core.Clamp(s.Resonance, 0, pass.MaxResonance)

	for i := 0; i < numFrames; i++ {
		cutoff := ModulatedCutoff(s.Cutoff, f.lfoPhase, s.AutoAmount)
		if f.lastCutoff < 0 || math.Abs(cutoff-f.lastCutoff) > Hysteresis || resonance != f.lastResonance {
			f.coeffs = pass.ResonantLP(cutoff, resonance, f.sampleRate)
			f.lastCutoff = cutoff
			f.lastResonance = resonance
		}

		frame := buf[i*Channels : i*Channels+Channels]
		for ch := range frame {
			frame[ch] = f.state[ch].Process(&f.coeffs, frame[ch])
		}

		f.lfoPhase = core.WrapPhase(f.lfoPhase + lfoInc)
	}
}
