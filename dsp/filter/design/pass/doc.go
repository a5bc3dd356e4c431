// Package pass designs low-pass biquad sections for the synth filter.
//
// The design follows the audio-EQ cookbook bilinear-transform low-pass with
// the quality factor derived from a normalized resonance control.
package pass
