package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// DefaultBufferSize is the device buffer latency requested from the
// platform driver.
const DefaultBufferSize = 20 * time.Millisecond

var (
	// ErrNotOpen is returned by Start before Open succeeded.
	ErrNotOpen = errors.New("device: not open")
	// ErrClosed is returned when using a closed Device.
	ErrClosed = errors.New("device: closed")
)

type config struct {
	bufferSize time.Duration
	logger     *slog.Logger
}

// Option configures a [Device].
type Option func(*config) error

// WithBufferSize sets the requested driver buffer duration.
func WithBufferSize(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return fmt.Errorf("device: buffer size must be > 0: %v", d)
		}
		cfg.bufferSize = d
		return nil
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// backend is the part of the platform audio context a Device drives.
type backend interface {
	Ready() <-chan struct{}
	NewPlayer(r io.Reader) player
	Resume() error
	Suspend() error
}

type player interface {
	Play()
	Pause()
	Close() error
}

type otoBackend struct {
	ctx   *oto.Context
	ready <-chan struct{}
}

func (b otoBackend) Ready() <-chan struct{}       { return b.ready }
func (b otoBackend) NewPlayer(r io.Reader) player { return b.ctx.NewPlayer(r) }
func (b otoBackend) Resume() error                { return b.ctx.Resume() }
func (b otoBackend) Suspend() error               { return b.ctx.Suspend() }

// openBackend creates the process-wide audio context. oto allows one per
// process, so a Device keeps the context once created.
var openBackend = func(sampleRate int, bufferSize time.Duration) (backend, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, err
	}
	return otoBackend{ctx: ctx, ready: ready}, nil
}

// Device owns the audio output context and a player pulling from a Stream.
// Only one Device may be opened per process.
type Device struct {
	cfg    config
	stream *Stream

	mu      sync.Mutex
	backend backend
	player  player
	playing bool
	closed  bool
}

// New returns a Device for r. No audio resources are acquired until Open.
func New(r Renderer, opts ...Option) (*Device, error) {
	if r == nil {
		return nil, errors.New("device: renderer is nil")
	}
	if sr := r.SampleRate(); sr <= 0 || sr != float64(int(sr)) {
		return nil, fmt.Errorf("device: sample rate must be a positive integer: %f", sr)
	}

	cfg := config{bufferSize: DefaultBufferSize, logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Device{cfg: cfg, stream: NewStream(r)}, nil
}

// Stream returns the reader feeding the device.
func (d *Device) Stream() *Stream { return d.stream }

// Open creates the audio context and waits until the driver is ready or
// ctx is done. After a cancelled wait, Open may be called again and
// resumes waiting on the same context.
func (d *Device) Open(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if d.player != nil {
		return nil
	}

	sampleRate := int(d.stream.r.SampleRate())
	if d.backend == nil {
		b, err := openBackend(sampleRate, d.cfg.bufferSize)
		if err != nil {
			return fmt.Errorf("device: open audio context: %w", err)
		}
		d.backend = b
	}
	select {
	case <-d.backend.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	d.player = d.backend.NewPlayer(d.stream)
	d.cfg.logger.Info("audio device open",
		"sample_rate", sampleRate,
		"channels", Channels,
		"buffer", d.cfg.bufferSize)
	return nil
}

// Start begins pulling audio from the Stream.
func (d *Device) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case d.closed:
		return ErrClosed
	case d.player == nil:
		return ErrNotOpen
	case d.playing:
		return nil
	}
	if err := d.backend.Resume(); err != nil {
		return fmt.Errorf("device: resume: %w", err)
	}
	d.player.Play()
	d.playing = true
	d.cfg.logger.Info("audio stream started")
	return nil
}

// Stop pauses playback. The Stream keeps its position.
func (d *Device) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

func (d *Device) stopLocked() error {
	if !d.playing {
		return nil
	}
	d.player.Pause()
	d.playing = false
	if err := d.backend.Suspend(); err != nil {
		return fmt.Errorf("device: suspend: %w", err)
	}
	d.cfg.logger.Info("audio stream stopped", "frames", d.stream.Frames())
	return nil
}

// Close stops playback and releases the player. The process-wide audio
// context stays suspended.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	err := d.stopLocked()
	if d.player != nil {
		if cerr := d.player.Close(); err == nil {
			err = cerr
		}
		d.player = nil
	}
	d.closed = true
	return err
}

// Playing reports whether the stream is running.
func (d *Device) Playing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.playing
}
