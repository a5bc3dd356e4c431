package engine

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// BaseFrequency is the pitch of note 0 at octave 0 in Hz.
const BaseFrequency = 220.0

// Option configures an Engine.
type Option func(*config) error

type config struct {
	proc     core.ProcessorConfig
	baseFreq float64
	seed     int64
	seeded   bool
}

func defaultConfig() config {
	return config{
		proc:     core.DefaultProcessorConfig(),
		baseFreq: BaseFrequency,
	}
}

// WithSampleRate sets the output sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
			return fmt.Errorf("engine sample rate must be > 0 and finite: %f", sampleRate)
		}
		cfg.proc.SampleRate = sampleRate
		return nil
	}
}

// WithBlockSize sets the scratch size in frames. Larger requests are
// processed in blocks of this size.
func WithBlockSize(frames int) Option {
	return func(cfg *config) error {
		if frames <= 0 {
			return fmt.Errorf("engine block size must be > 0: %d", frames)
		}
		cfg.proc.BlockSize = frames
		return nil
	}
}

// WithProcessorConfig applies shared processor options.
func WithProcessorConfig(opts ...core.ProcessorOption) Option {
	return func(cfg *config) error {
		for _, opt := range opts {
			if opt != nil {
				opt(&cfg.proc)
			}
		}
		return nil
	}
}

// WithBaseFrequency sets the pitch of note 0 at octave 0.
func WithBaseFrequency(hz float64) Option {
	return func(cfg *config) error {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("engine base frequency must be > 0 and finite: %f", hz)
		}
		cfg.baseFreq = hz
		return nil
	}
}

// WithSeed makes the noise oscillators deterministic. Each slot derives
// its own stream from seed.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		cfg.seeded = true
		return nil
	}
}
