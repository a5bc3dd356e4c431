package osc

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	// Channels is the number of interleaved channels GenerateBuffer writes.
	Channels = 2

	amplitude = 0.5
)

// Option configures an Oscillator.
type Option func(*Oscillator)

// WithSeed makes the noise waveform deterministic.
func WithSeed(seed int64) Option {
	return func(o *Oscillator) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithPhase sets the initial phase; it is wrapped into [0, 1).
func WithPhase(phase float64) Option {
	return func(o *Oscillator) {
		o.phase = core.WrapPhase(phase)
	}
}

// Oscillator is a phase accumulator producing dual-mono frames.
type Oscillator struct {
	phase float64
	rng   *rand.Rand
}

// New returns an oscillator at phase 0. Without WithSeed the noise
// generator is seeded randomly.
func New(opts ...Option) *Oscillator {
	o := &Oscillator{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return o
}

// Phase returns the current phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// SetPhase moves the phase; it is wrapped into [0, 1).
func (o *Oscillator) SetPhase(phase float64) {
	o.phase = core.WrapPhase(phase)
}

// Reset returns the phase to 0. The noise sequence is not rewound.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// PhaseIncrement returns the per-frame phase step for frequency at
// sampleRate. Non-finite results and a non-positive sample rate yield 0.
func PhaseIncrement(frequency, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	inc := frequency / sampleRate
	if math.IsNaN(inc) || math.IsInf(inc, 0) {
		return 0
	}
	return inc
}

// GenerateBuffer overwrites the first numFrames interleaved stereo frames of
// buf with waveform at frequency and advances the phase by numFrames steps of
// frequency/sampleRate. Left and right carry the same sample.
//
// numFrames is clamped to len(buf)/2. An undefined waveform writes silence
// while the phase keeps advancing.
func (o *Oscillator) GenerateBuffer(buf []float64, numFrames int, waveform Waveform, frequency, sampleRate float64) {
	numFrames = min(numFrames, len(buf)/Channels)
	if numFrames <= 0 {
		return
	}

	inc := PhaseIncrement(frequency, sampleRate)
	buf = buf[:numFrames*Channels]

	switch waveform {
	case Triangle:
		o.triangle(buf, inc)
	case Saw:
		o.saw(buf, inc)
	case Noise:
		o.noise(buf, inc)
	default:
		clear(buf)
		o.advance(inc, numFrames)
	}
}

func (o *Oscillator) triangle(buf []float64, inc float64) {
	phase := o.phase
	for i := 0; i < len(buf); i += Channels {
		var s float64
		if phase < 0.5 {
			s = 4*phase - 1
		} else {
			s = 3 - 4*phase
		}
		s *= amplitude
		buf[i] = s
		buf[i+1] = s

		phase = core.WrapPhase(phase + inc)
	}
	o.phase = phase
}

func (o *Oscillator) saw(buf []float64, inc float64) {
	phase := o.phase
	for i := 0; i < len(buf); i += Channels {
		s := (2*phase - 1) * amplitude
		buf[i] = s
		buf[i+1] = s

		phase = core.WrapPhase(phase + inc)
	}
	o.phase = phase
}

func (o *Oscillator) noise(buf []float64, inc float64) {
	for i := 0; i < len(buf); i += Channels {
		s := o.rng.Float64() - amplitude
		buf[i] = s
		buf[i+1] = s
	}
	o.advance(inc, len(buf)/Channels)
}

// advance steps the phase frame by frame so a later switch to a periodic
// waveform continues exactly where it would have been.
func (o *Oscillator) advance(inc float64, numFrames int) {
	phase := o.phase
	for range numFrames {
		phase = core.WrapPhase(phase + inc)
	}
	o.phase = phase
}
