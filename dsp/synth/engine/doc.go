// Package engine is the monophonic subtractive synth voice.
//
// An [Engine] owns three oscillators, one amplitude envelope and one
// LFO-modulated resonant low-pass. Each [Engine.ProcessAudio] call loads a
// single [control.Params] snapshot and runs
//
//	oscillators -> mix -> envelope -> filter -> volume -> output
//
// over interleaved stereo float32 frames (left == right).
//
// ProcessAudio is meant for the audio callback: it does not allocate, lock
// or block. NoteOn and NoteOff may be called from any goroutine; they only
// publish atomic gate state that the next ProcessAudio call applies to the
// envelope. Oscillator phase, envelope and filter state are touched only
// by ProcessAudio.
package engine
