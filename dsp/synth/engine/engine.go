package engine

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/buffer"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/synth/control"
	"github.com/cwbudde/algo-synth/dsp/synth/envelope"
	"github.com/cwbudde/algo-synth/dsp/synth/filter"
	"github.com/cwbudde/algo-synth/dsp/synth/osc"
)

// Channels is the number of interleaved output channels.
const Channels = 2

// Engine renders the synth voice. See the package documentation for the
// threading contract.
type Engine struct {
	cfg   config
	store *control.Store

	oscs    [control.NumOscillators]*osc.Oscillator
	env     *envelope.Envelope
	filt    *filter.Filter
	scratch *buffer.Interleaved
	mix     *buffer.Interleaved

	gate    gate
	seenGen uint64
}

// New returns an engine reading its controls from store. A nil store
// uses a private Store holding control.Defaults.
func New(store *control.Store, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.proc.SampleRate <= 0 || math.IsNaN(cfg.proc.SampleRate) || math.IsInf(cfg.proc.SampleRate, 0) {
		return nil, fmt.Errorf("engine sample rate must be > 0 and finite: %f", cfg.proc.SampleRate)
	}
	if cfg.proc.BlockSize <= 0 {
		return nil, fmt.Errorf("engine block size must be > 0: %d", cfg.proc.BlockSize)
	}
	if store == nil {
		store = control.NewStore(control.Defaults())
	}

	env, err := envelope.New(cfg.proc.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	filt, err := filter.New(cfg.proc.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:     cfg,
		store:   store,
		env:     env,
		filt:    filt,
		scratch: buffer.New(cfg.proc.BlockSize, Channels),
		mix:     buffer.New(cfg.proc.BlockSize, Channels),
	}
	for i := range e.oscs {
		if cfg.seeded {
			e.oscs[i] = osc.New(osc.WithSeed(cfg.seed + int64(i)))
		} else {
			e.oscs[i] = osc.New()
		}
	}
	e.gate.freq.Store(math.Float64bits(cfg.baseFreq))
	return e, nil
}

// SampleRate returns the output sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.cfg.proc.SampleRate }

// BlockSize returns the number of frames rendered per internal block.
func (e *Engine) BlockSize() int { return e.cfg.proc.BlockSize }

// Store returns the control store the engine reads.
func (e *Engine) Store() *control.Store { return e.store }

// NoteFrequencyFor returns baseFreq * 2^(octave + note/12).
func NoteFrequencyFor(baseFreq float64, octave, note int) float64 {
	return baseFreq * math.Exp2(float64(octave)+float64(note)/12)
}

// NoteOn sets the note frequency from the current octave and retriggers
// the envelope attack at the start of the next buffer.
func (e *Engine) NoteOn(note int) {
	octave := e.store.Load().Octave
	e.gate.noteOn(NoteFrequencyFor(e.cfg.baseFreq, octave, note))
}

// NoteOff starts the envelope release at the start of the next buffer.
func (e *Engine) NoteOff() {
	e.gate.noteOff()
}

// NoteFrequency returns the frequency of the last NoteOn in Hz.
func (e *Engine) NoteFrequency() float64 { return e.gate.frequency() }

// NoteIsOn reports whether a note is held.
func (e *Engine) NoteIsOn() bool { return e.gate.on.Load() }

// EnvelopeStage returns the envelope stage after the last processed frame.
// It must be called from the goroutine running ProcessAudio.
func (e *Engine) EnvelopeStage() envelope.Stage { return e.env.Stage() }

// ProcessAudio renders numFrames interleaved stereo frames into out.
// numFrames is clamped to len(out)/2. Samples past numFrames are left
// untouched.
func (e *Engine) ProcessAudio(out []float32, numFrames int) {
	numFrames = min(numFrames, len(out)/Channels)
	if numFrames <= 0 {
		return
	}

	p := e.store.Load()
	e.applyGate()
	e.env.SetAttackTime(p.Attack)
	e.env.SetReleaseTime(p.Release)
	e.env.SetSustainLevel(p.Sustain)
	fs := filter.Settings{
		Cutoff:     p.Cutoff,
		Resonance:  p.Resonance,
		AutoAmount: p.AutoAmount,
		AutoFreq:   p.AutoFreq,
	}
	noteFreq := e.gate.frequency()

	block := e.cfg.proc.BlockSize
	for done := 0; done < numFrames; done += block {
		n := min(block, numFrames-done)
		e.render(&p, noteFreq, fs, n)
		core.ToFloat32(out[done*Channels:(done+n)*Channels], e.mix.Frames(n))
	}
}

// applyGate moves pending note events onto the envelope. A note that was
// pressed and released between two buffers starts and immediately releases.
func (e *Engine) applyGate() {
	if gen := e.gate.gen.Load(); gen != e.seenGen {
		e.seenGen = gen
		e.env.NoteOn()
	}
	if !e.gate.on.Load() {
		e.env.NoteOff()
	}
}

func (e *Engine) render(p *control.Params, noteFreq float64, fs filter.Settings, n int) {
	mix := e.mix.Frames(n)
	e.mix.Zero(n)
	scratch := e.scratch.Frames(n)

	for i := range e.oscs {
		o := p.Osc[i]
		if !o.Enabled {
			continue
		}
		freq := noteFreq * core.SemitonesToRatio(o.Offset)
		e.oscs[i].GenerateBuffer(scratch, n, o.Waveform, freq, e.cfg.proc.SampleRate)
		vecmath.AddBlockInPlace(mix, scratch)
	}

	e.env.ProcessBuffer(mix, n, Channels)
	e.filt.ProcessBuffer(mix, n, fs)
	vecmath.ScaleBlock(mix, mix, p.Volume)
}

// Reset silences the voice: envelope idle, filter history cleared,
// oscillator phases at zero. It must not run concurrently with
// ProcessAudio.
func (e *Engine) Reset() {
	for _, o := range e.oscs {
		o.Reset()
	}
	e.env.Reset()
	e.filt.Reset()
	e.gate.noteOff()
	e.seenGen = e.gate.gen.Load()
}
