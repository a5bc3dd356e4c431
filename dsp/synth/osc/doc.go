// Package osc provides the phase-accumulator oscillator used by the synth
// voice.
//
// An [Oscillator] owns only its running phase (and a noise generator). The
// waveform and frequency are passed to every [Oscillator.GenerateBuffer] call,
// so the caller's control snapshot stays the single source of truth while the
// oscillator guarantees phase continuity across buffers.
//
// All waveforms span [-0.5, 0.5]:
//
//	Triangle  4p-1 rising for p < 0.5, 3-4p falling otherwise, scaled by 0.5
//	Saw       (2p-1) * 0.5
//	Noise     independent uniform samples; the phase still advances
//
// No band-limiting is applied; aliasing at high fundamentals is accepted.
package osc
