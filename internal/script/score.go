// Package script compiles Lua note sequences into timed scores and renders
// them through a synthesizer engine.
//
// A script calls these globals:
//
//	note_on(n)          start note n (0 = C of the current octave)
//	note_off()          release the current note
//	wait(seconds)       advance time
//	set(name, value)    change a control; see control.Names
//	log(msg)            write msg to the render log
//
// Waveform controls also accept a name ("triangle", "saw", "noise") and
// enable flags accept booleans.
package script

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cwbudde/algo-synth/dsp/synth/control"
	"github.com/cwbudde/algo-synth/dsp/synth/osc"
	lua "github.com/yuin/gopher-lua"
)

// DefaultMaxDuration bounds the length of a compiled score.
const DefaultMaxDuration = 10 * time.Minute

// EventKind identifies a score event.
type EventKind int

const (
	EventNoteOn EventKind = iota
	EventNoteOff
	EventSet
)

func (k EventKind) String() string {
	switch k {
	case EventNoteOn:
		return "note_on"
	case EventNoteOff:
		return "note_off"
	case EventSet:
		return "set"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event happens at Frame, before that frame is rendered.
type Event struct {
	Frame int64
	Kind  EventKind
	Note  int
	Name  string
	Value float64
}

// Score is a compiled sequence. Frames is the total length including
// trailing waits.
type Score struct {
	SampleRate float64
	Frames     int64
	Events     []Event
}

// Duration returns the score length.
func (s *Score) Duration() time.Duration {
	return time.Duration(float64(s.Frames) / s.SampleRate * float64(time.Second))
}

type config struct {
	maxDuration time.Duration
	logger      *slog.Logger
}

// Option configures compilation.
type Option func(*config) error

// WithMaxDuration bounds the total wait time of a script.
func WithMaxDuration(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return fmt.Errorf("script: max duration must be > 0: %v", d)
		}
		cfg.maxDuration = d
		return nil
	}
}

// WithLogger sets the destination of log() calls.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// Compile runs src and records its events at sampleRate.
func Compile(src string, sampleRate float64, opts ...Option) (*Score, error) {
	return compile(sampleRate, opts, func(L *lua.LState) error { return L.DoString(src) })
}

// CompileFile runs the script at path.
func CompileFile(path string, sampleRate float64, opts ...Option) (*Score, error) {
	return compile(sampleRate, opts, func(L *lua.LState) error { return L.DoFile(path) })
}

func compile(sampleRate float64, opts []Option, run func(*lua.LState) error) (*Score, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("script sample rate must be > 0 and finite: %f", sampleRate)
	}
	cfg := config{maxDuration: DefaultMaxDuration, logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	if err := openLibs(L); err != nil {
		return nil, err
	}

	c := &compiler{
		score:     &Score{SampleRate: sampleRate},
		maxFrames: int64(cfg.maxDuration.Seconds() * sampleRate),
		logger:    cfg.logger,
		scratch:   control.Defaults(),
	}
	c.register(L)

	if err := run(L); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return c.score, nil
}

func openLibs(L *lua.LState) error {
	libs := []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return fmt.Errorf("script: open %s: %w", lib.name, err)
		}
	}
	return nil
}

type compiler struct {
	score     *Score
	maxFrames int64
	logger    *slog.Logger
	scratch   control.Params
}

func (c *compiler) register(L *lua.LState) {
	L.SetGlobal("note_on", L.NewFunction(c.noteOn))
	L.SetGlobal("note_off", L.NewFunction(c.noteOff))
	L.SetGlobal("wait", L.NewFunction(c.wait))
	L.SetGlobal("set", L.NewFunction(c.set))
	L.SetGlobal("log", L.NewFunction(c.log))
}

func (c *compiler) emit(e Event) {
	e.Frame = c.score.Frames
	c.score.Events = append(c.score.Events, e)
}

func (c *compiler) noteOn(L *lua.LState) int {
	c.emit(Event{Kind: EventNoteOn, Note: L.CheckInt(1)})
	return 0
}

func (c *compiler) noteOff(L *lua.LState) int {
	c.emit(Event{Kind: EventNoteOff})
	return 0
}

func (c *compiler) wait(L *lua.LState) int {
	sec := float64(L.CheckNumber(1))
	if sec < 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		L.ArgError(1, "wait time must be >= 0 and finite")
		return 0
	}
	frames := int64(math.Round(sec * c.score.SampleRate))
	if c.score.Frames+frames > c.maxFrames {
		L.RaiseError("%v", ErrTooLong)
		return 0
	}
	c.score.Frames += frames
	return 0
}

func (c *compiler) set(L *lua.LState) int {
	name := L.CheckString(1)
	var value float64
	switch v := L.Get(2).(type) {
	case lua.LNumber:
		value = float64(v)
	case lua.LBool:
		if v {
			value = 1
		}
	case lua.LString:
		w, err := osc.ParseWaveform(string(v))
		if err != nil {
			L.ArgError(2, err.Error())
			return 0
		}
		value = float64(w)
	default:
		L.TypeError(2, lua.LTNumber)
		return 0
	}
	if err := c.scratch.Set(name, value); err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	c.emit(Event{Kind: EventSet, Name: name, Value: value})
	return 0
}

func (c *compiler) log(L *lua.LState) int {
	c.logger.Info(L.CheckString(1), "frame", c.score.Frames)
	return 0
}
