// Package envelope provides the linear amplitude envelope of the synth voice.
//
// The envelope is a four-stage state machine (Idle, Attack, Sustain, Release)
// advanced once per frame. There is no decay stage: the attack ramps to 1 and
// the sustain stage holds the sustain level until note-off.
package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// InstantRate is the per-frame step used for zero or negative stage times.
// It completes a ramp within one frame.
const InstantRate = 1000.0

// Stage is the current envelope state.
type Stage int

const (
	// StageIdle outputs silence.
	StageIdle Stage = iota
	// StageAttack ramps the value up to 1.
	StageAttack
	// StageSustain holds the sustain level.
	StageSustain
	// StageRelease ramps the value down to 0.
	StageRelease
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Envelope is a per-frame gain generator driven by note events.
type Envelope struct {
	sampleRate float64

	attackRate   float64
	releaseRate  float64
	sustainLevel float64

	stage Stage
	value float64
}

// New returns an idle envelope with instant attack and release and a
// sustain level of 1.
func New(sampleRate float64) (*Envelope, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("envelope sample rate must be > 0 and finite: %f", sampleRate)
	}

	return &Envelope{
		sampleRate:   sampleRate,
		attackRate:   InstantRate,
		releaseRate:  InstantRate,
		sustainLevel: 1,
	}, nil
}

// Rate converts a stage time in seconds to a per-frame step:
// 1/(seconds*sampleRate), or InstantRate when seconds is not positive.
func Rate(seconds, sampleRate float64) float64 {
	if !(seconds > 0) || sampleRate <= 0 {
		return InstantRate
	}
	rate := 1 / (seconds * sampleRate)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return InstantRate
	}
	return rate
}

// SetAttackTime sets the time to rise from 0 to 1, in seconds.
func (e *Envelope) SetAttackTime(seconds float64) {
	e.attackRate = Rate(seconds, e.sampleRate)
}

// SetReleaseTime sets the time to fall from 1 to 0, in seconds.
func (e *Envelope) SetReleaseTime(seconds float64) {
	e.releaseRate = Rate(seconds, e.sampleRate)
}

// SetSustainLevel sets the held level, clamped to [0, 1].
func (e *Envelope) SetSustainLevel(level float64) {
	e.sustainLevel = core.Clamp(level, 0, 1)
}

// NoteOn (re)starts the attack from the current value, even mid-release.
func (e *Envelope) NoteOn() {
	e.stage = StageAttack
}

// NoteOff starts the release. It is a no-op while idle.
func (e *Envelope) NoteOff() {
	if e.stage != StageIdle {
		e.stage = StageRelease
	}
}

// Reset returns the envelope to idle at zero.
func (e *Envelope) Reset() {
	e.stage = StageIdle
	e.value = 0
}

// Stage returns the current stage.
func (e *Envelope) Stage() Stage { return e.stage }

// Value returns the gain applied to the most recent frame.
func (e *Envelope) Value() float64 { return e.value }

// SampleRate returns the sample rate in Hz.
func (e *Envelope) SampleRate() float64 { return e.sampleRate }

// Next advances one frame and returns the new gain.
func (e *Envelope) Next() float64 {
	switch e.stage {
	case StageAttack:
		e.value += e.attackRate
		if e.value >= 1 {
			e.value = 1
			e.stage = StageSustain
		}
	case StageSustain:
		e.value = e.sustainLevel
	case StageRelease:
		e.value -= e.releaseRate
		if e.value <= 0 {
			e.value = 0
			e.stage = StageIdle
		}
	default:
		e.value = 0
	}

	return e.value
}

// ProcessBuffer multiplies the first numFrames frames of the interleaved buf
// by the envelope, advancing it once per frame so every channel of a frame
// gets the same gain. numFrames is clamped to len(buf)/channels.
func (e *Envelope) ProcessBuffer(buf []float64, numFrames, channels int) {
	if channels <= 0 {
		return
	}
	numFrames = min(numFrames, len(buf)/channels)

	for i := range max(numFrames, 0) {
		g := e.Next()
		frame := buf[i*channels : (i+1)*channels]
		for c := range frame {
			frame[c] *= g
		}
	}
}
