package envelope

import (
	"math"
	"testing"
)

const sampleRate = 44100.0

func newEnvelope(t *testing.T) *Envelope {
	t.Helper()
	e, err := New(sampleRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func ones(frames int) []float64 {
	buf := make([]float64, frames*2)
	for i := range buf {
		buf[i] = 1
	}
	return buf
}

func TestNewValidation(t *testing.T) {
	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := New(sr); err == nil {
			t.Fatalf("New(%v) expected error", sr)
		}
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    float64
	}{
		{name: "one-second", seconds: 1, want: 1 / sampleRate},
		{name: "tenth", seconds: 0.1, want: 1 / (0.1 * sampleRate)},
		{name: "zero", seconds: 0, want: InstantRate},
		{name: "negative", seconds: -2, want: InstantRate},
		{name: "nan", seconds: math.NaN(), want: InstantRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.seconds, sampleRate); math.Abs(got-tt.want) > 1e-15 {
				t.Fatalf("Rate(%v) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestAttackReachesOneAfterAttackTime(t *testing.T) {
	e := newEnvelope(t)
	e.SetAttackTime(0.1)
	e.NoteOn()

	frames := int(0.1 * sampleRate)
	buf := ones(frames)
	e.ProcessBuffer(buf, frames, 2)

	if math.Abs(e.Value()-1) > 1e-6 {
		t.Fatalf("value = %v, want ~1", e.Value())
	}
	if e.Stage() != StageAttack && e.Stage() != StageSustain {
		t.Fatalf("stage = %v, want attack or sustain", e.Stage())
	}

	e.ProcessBuffer(ones(2), 2, 2)
	if e.Stage() != StageSustain || e.Value() != 1 {
		t.Fatalf("stage=%v value=%v, want sustain at 1", e.Stage(), e.Value())
	}
}

func TestAttackIsMonotonic(t *testing.T) {
	e := newEnvelope(t)
	e.SetAttackTime(0.01)
	e.NoteOn()

	prev := 0.0
	for i := range 1000 {
		v := e.Next()
		if v < prev {
			t.Fatalf("frame %d: value decreased %v -> %v", i, prev, v)
		}
		if v > 1 {
			t.Fatalf("frame %d: value %v above 1", i, v)
		}
		prev = v
	}
}

func TestReleaseReachesIdleAfterReleaseTime(t *testing.T) {
	e := newEnvelope(t)
	e.SetAttackTime(0)
	e.SetReleaseTime(0.5)
	e.NoteOn()
	e.Next()
	if e.Value() != 1 {
		t.Fatalf("value = %v, want 1 after instant attack", e.Value())
	}

	e.NoteOff()
	frames := int(0.5*sampleRate) + 1
	prev := e.Value()
	for i := range frames {
		v := e.Next()
		if v > prev {
			t.Fatalf("frame %d: release value increased %v -> %v", i, prev, v)
		}
		prev = v
	}

	if e.Value() != 0 || e.Stage() != StageIdle {
		t.Fatalf("stage=%v value=%v, want idle at 0", e.Stage(), e.Value())
	}
}

func TestNoteOffWhileIdleIsNoop(t *testing.T) {
	e := newEnvelope(t)
	e.NoteOff()
	if e.Stage() != StageIdle {
		t.Fatalf("stage = %v, want idle", e.Stage())
	}

	buf := ones(4)
	e.ProcessBuffer(buf, 4, 2)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestNoteOnRetriggersDuringRelease(t *testing.T) {
	e := newEnvelope(t)
	e.SetAttackTime(0)
	e.SetReleaseTime(1)
	e.NoteOn()
	e.Next()
	e.NoteOff()
	for range 100 {
		e.Next()
	}
	mid := e.Value()
	if mid <= 0 || mid >= 1 {
		t.Fatalf("mid-release value = %v", mid)
	}

	e.SetAttackTime(1)
	e.NoteOn()
	if e.Stage() != StageAttack {
		t.Fatalf("stage = %v, want attack", e.Stage())
	}
	if v := e.Next(); v <= mid {
		t.Fatalf("attack did not resume from %v: got %v", mid, v)
	}
}

func TestSustainReassertsLevel(t *testing.T) {
	e := newEnvelope(t)
	e.SetAttackTime(0)
	e.NoteOn()
	e.Next()

	e.SetSustainLevel(0.25)
	if v := e.Next(); v != 0.25 {
		t.Fatalf("sustain value = %v, want 0.25", v)
	}

	e.SetSustainLevel(2)
	if v := e.Next(); v != 1 {
		t.Fatalf("sustain value = %v, want clamp to 1", v)
	}

	e.SetSustainLevel(-1)
	if v := e.Next(); v != 0 {
		t.Fatalf("sustain value = %v, want clamp to 0", v)
	}
}

func TestProcessBufferAppliesSameGainToBothChannels(t *testing.T) {
	e := newEnvelope(t)
	e.SetAttackTime(0.001)
	e.NoteOn()

	buf := ones(64)
	e.ProcessBuffer(buf, 64, 2)

	rate := Rate(0.001, sampleRate)
	for i := 0; i < 44; i++ {
		l, r := buf[2*i], buf[2*i+1]
		if l != r {
			t.Fatalf("frame %d: left=%v right=%v", i, l, r)
		}
		want := math.Min(float64(i+1)*rate, 1)
		if math.Abs(l-want) > 1e-12 {
			t.Fatalf("frame %d: gain=%v want %v", i, l, want)
		}
	}
}

func TestProcessBufferClampsFrames(t *testing.T) {
	e := newEnvelope(t)
	e.NoteOn()

	buf := ones(2)
	e.ProcessBuffer(buf, 10, 2)
	e.ProcessBuffer(buf, -1, 2)
	e.ProcessBuffer(buf, 2, 0)
}

func TestResetReturnsToIdle(t *testing.T) {
	e := newEnvelope(t)
	e.NoteOn()
	e.Next()
	e.Reset()
	if e.Stage() != StageIdle || e.Value() != 0 {
		t.Fatalf("stage=%v value=%v, want idle at 0", e.Stage(), e.Value())
	}
}

func TestStageString(t *testing.T) {
	if StageRelease.String() != "release" || Stage(9).String() != "Stage(9)" {
		t.Fatalf("unexpected stage names: %q %q", StageRelease, Stage(9))
	}
}
