package control

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/synth/osc"
)

// NumOscillators is the number of oscillator slots.
const NumOscillators = 3

// Parameter ranges enforced by Normalize.
const (
	MaxOffset     = 5.0 // semitones
	MaxAttack     = 1.0 // seconds
	MaxRelease    = 2.0 // seconds
	MinCutoff     = 20.0
	MaxCutoff     = 20000.0
	MaxResonance  = 0.99
	MaxAutoAmount = 1.0
	MaxAutoFreq   = 20.0
	MinOctave     = -2
	MaxOctave     = 1
)

// OscParams configures one oscillator slot.
type OscParams struct {
	Enabled  bool         `json:"enabled"`
	Waveform osc.Waveform `json:"waveform"`
	Offset   float64      `json:"offset"` // semitones relative to the note
}

// Params is one snapshot of every synth control.
type Params struct {
	Osc [NumOscillators]OscParams `json:"osc"`

	Attack  float64 `json:"attack"`  // seconds
	Release float64 `json:"release"` // seconds
	Sustain float64 `json:"sustain"` // 0..1

	Cutoff     float64 `json:"cutoff"`      // Hz
	Resonance  float64 `json:"resonance"`   // 0..0.99
	AutoAmount float64 `json:"auto_amount"` // filter LFO depth, 0..1
	AutoFreq   float64 `json:"auto_freq"`   // filter LFO rate in Hz

	Volume float64 `json:"volume"` // 0..1
	Octave int     `json:"octave"`
}

// Defaults returns the power-on patch: triangle, saw and noise slots, all
// disabled.
func Defaults() Params {
	return Params{
		Osc: [NumOscillators]OscParams{
			{Waveform: osc.Triangle, Offset: 0},
			{Waveform: osc.Saw, Offset: -2},
			{Waveform: osc.Noise, Offset: 3},
		},
		Attack:     0.1,
		Release:    0.5,
		Sustain:    1,
		Cutoff:     10000,
		Resonance:  0,
		AutoAmount: 0,
		AutoFreq:   5,
		Volume:     0.5,
		Octave:     0,
	}
}

// Normalize clamps every field into its documented range. NaN becomes the
// lower bound; undefined waveforms fall back to the slot default.
func (p Params) Normalize() Params {
	def := Defaults()
	for i := range p.Osc {
		o := &p.Osc[i]
		if !o.Waveform.Valid() {
			o.Waveform = def.Osc[i].Waveform
		}
		o.Offset = core.Clamp(o.Offset, -MaxOffset, MaxOffset)
	}
	p.Attack = core.Clamp(p.Attack, 0, MaxAttack)
	p.Release = core.Clamp(p.Release, 0, MaxRelease)
	p.Sustain = core.Clamp(p.Sustain, 0, 1)
	p.Cutoff = core.Clamp(p.Cutoff, MinCutoff, MaxCutoff)
	p.Resonance = core.Clamp(p.Resonance, 0, MaxResonance)
	p.AutoAmount = core.Clamp(p.AutoAmount, 0, MaxAutoAmount)
	p.AutoFreq = core.Clamp(p.AutoFreq, 0, MaxAutoFreq)
	p.Volume = core.Clamp(p.Volume, 0, 1)
	p.Octave = min(max(p.Octave, MinOctave), MaxOctave)
	return p
}

// Validate reports whether every numeric field is finite.
func (p Params) Validate() error {
	vals := []float64{
		p.Attack, p.Release, p.Sustain, p.Cutoff, p.Resonance,
		p.AutoAmount, p.AutoFreq, p.Volume,
	}
	for _, o := range p.Osc {
		vals = append(vals, o.Offset)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidValue
		}
	}
	return nil
}
