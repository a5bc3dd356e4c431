// Package wavout writes rendered synthesizer output to 16-bit PCM WAV files.
package wavout

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-synth/dsp/dither"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// BitDepth is the PCM sample width of written files.
const BitDepth = 16

const pcmFormat = 1

type config struct {
	ditherType dither.DitherType
	shape      bool
	seed       uint64
	seeded     bool
}

// Option configures a [Writer].
type Option func(*config) error

// WithDither selects the dither applied before 16-bit quantization
// (default triangular).
func WithDither(dt dither.DitherType) Option {
	return func(cfg *config) error {
		if !dt.Valid() {
			return fmt.Errorf("wavout: invalid dither type: %d", dt)
		}
		cfg.ditherType = dt
		return nil
	}
}

// WithNoiseShaping feeds back the previous quantization error, moving
// requantization noise towards high frequencies.
func WithNoiseShaping() Option {
	return func(cfg *config) error {
		cfg.shape = true
		return nil
	}
}

// WithSeed makes the dither noise reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		cfg.seeded = true
		return nil
	}
}

// Writer encodes interleaved float32 frames as 16-bit PCM.
type Writer struct {
	enc        *wav.Encoder
	file       *os.File
	sampleRate int
	channels   int
	quant      []*dither.Quantizer
	buf        *audio.IntBuffer
	frames     int
	closed     bool
}

// Create creates path and returns a Writer encoding into it.
func Create(path string, sampleRate, channels int, opts ...Option) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wavout: create %s: %w", path, err)
	}
	w, err := NewWriter(f, sampleRate, channels, opts...)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	w.file = f
	return w, nil
}

// NewWriter returns a Writer encoding into ws. Close finalizes the header
// but does not close ws.
func NewWriter(ws io.WriteSeeker, sampleRate, channels int, opts ...Option) (*Writer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wavout: sample rate must be > 0: %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("wavout: channel count must be > 0: %d", channels)
	}

	cfg := config{ditherType: dither.DitherTriangular}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	quant := make([]*dither.Quantizer, channels)
	for ch := range quant {
		qopts := []dither.Option{
			dither.WithBitDepth(BitDepth),
			dither.WithDitherType(cfg.ditherType),
		}
		if cfg.shape {
			qopts = append(qopts, dither.WithErrorFeedback(1))
		}
		if cfg.seeded {
			qopts = append(qopts, dither.WithSeed(cfg.seed+uint64(ch)))
		}
		q, err := dither.NewQuantizer(qopts...)
		if err != nil {
			return nil, err
		}
		quant[ch] = q
	}

	return &Writer{
		enc:        wav.NewEncoder(ws, sampleRate, BitDepth, channels, pcmFormat),
		sampleRate: sampleRate,
		channels:   channels,
		quant:      quant,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: BitDepth,
		},
	}, nil
}

// WriteFloat32 quantizes and appends interleaved samples.
func (w *Writer) WriteFloat32(samples []float32) error {
	if w.closed {
		return ErrClosed
	}
	if len(samples)%w.channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrPartialFrame, len(samples), w.channels)
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = w.quant[i%w.channels].ProcessInteger(float64(s))
	}
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wavout: encode: %w", err)
	}
	w.frames += len(samples) / w.channels
	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }

// SampleRate returns the file sample rate.
func (w *Writer) SampleRate() int { return w.sampleRate }

// Channels returns the channel count.
func (w *Writer) Channels() int { return w.channels }

// Close writes the final header sizes and closes the file opened by
// Create. It returns ErrEmptyRender when nothing was written; the file is
// still a valid empty WAV in that case.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.enc.Close()
	if w.file != nil {
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("wavout: close: %w", err)
	}
	if w.frames == 0 {
		return ErrEmptyRender
	}
	return nil
}
