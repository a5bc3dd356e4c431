// Package filter implements the synth voice filter: a resonant low-pass
// biquad whose cutoff is swept by a free-running sine LFO.
//
// Coefficients are redesigned only when the modulated cutoff has moved more
// than [Hysteresis] Hz since the last design, or when the resonance
// changes. Each channel of the interleaved buffer keeps its own Direct
// Form I history while sharing one coefficient set.
package filter
