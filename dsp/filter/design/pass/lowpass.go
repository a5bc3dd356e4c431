package pass

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/filter/biquad"
)

// MaxResonance is the largest resonance accepted by ResonanceQ. At 1 the
// quality factor would be infinite.
const MaxResonance = 0.99

// maxCutoffRatio keeps the design frequency below Nyquist, where the
// low-pass poles would land on the unit circle.
const maxCutoffRatio = 0.49

// ResonanceQ maps a resonance control in [0, MaxResonance] to a quality
// factor: Q = 0.5 / (1 - resonance). Out-of-range and NaN inputs are
// clamped.
func ResonanceQ(resonance float64) float64 {
	return 0.5 / (1 - core.Clamp(resonance, 0, MaxResonance))
}

// ResonantLP designs a resonant low-pass section at cutoff (Hz).
//
//	w = 2*pi*cutoff/sampleRate, alpha = sin(w)/(2Q), norm = 1/(1+alpha)
//	B0 = B2 = (1-cos w)/2 * norm, B1 = (1-cos w) * norm
//	A1 = -2 cos w * norm,         A2 = (1-alpha) * norm
//
// The cutoff is clamped to (0, 0.49*sampleRate). An invalid sample rate
// yields a pass-through section.
func ResonantLP(cutoff, resonance, sampleRate float64) biquad.Coefficients {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return biquad.Coefficients{B0: 1}
	}

	cutoff = core.Clamp(cutoff, math.SmallestNonzeroFloat32, maxCutoffRatio*sampleRate)
	q := ResonanceQ(resonance)

	w := 2 * math.Pi * cutoff / sampleRate
	sw, cw := math.Sincos(w)
	alpha := sw / (2 * q)
	norm := 1 / (1 + alpha)

	return biquad.Coefficients{
		B0: (1 - cw) * 0.5 * norm,
		B1: (1 - cw) * norm,
		B2: (1 - cw) * 0.5 * norm,
		A1: -2 * cw * norm,
		A2: (1 - alpha) * norm,
	}
}
