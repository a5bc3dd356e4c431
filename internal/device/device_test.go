package device

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

type fakePlayer struct {
	playing bool
	closed  bool
}

func (p *fakePlayer) Play()  { p.playing = true }
func (p *fakePlayer) Pause() { p.playing = false }
func (p *fakePlayer) Close() error {
	p.closed = true
	return nil
}

type fakeBackend struct {
	ready     chan struct{}
	players   []*fakePlayer
	suspended int
}

func (b *fakeBackend) Ready() <-chan struct{} { return b.ready }
func (b *fakeBackend) Resume() error          { return nil }

func (b *fakeBackend) Suspend() error {
	b.suspended++
	return nil
}

func (b *fakeBackend) NewPlayer(io.Reader) player {
	p := &fakePlayer{}
	b.players = append(b.players, p)
	return p
}

// useFakeBackend swaps the platform context for a fake that, like oto,
// refuses to be created twice.
func useFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{ready: make(chan struct{})}
	created := false
	orig := openBackend
	openBackend = func(int, time.Duration) (backend, error) {
		if created {
			return nil, errors.New("context is already created")
		}
		created = true
		return fb, nil
	}
	t.Cleanup(func() { openBackend = orig })
	return fb
}

type badRateRenderer struct{ rampRenderer }

func (badRateRenderer) SampleRate() float64 { return 44100.5 }

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) error = nil")
	}
	if _, err := New(&badRateRenderer{rampRenderer{block: 4}}); err == nil {
		t.Error("New() with fractional sample rate: error = nil")
	}
	if _, err := New(&rampRenderer{block: 4}, WithBufferSize(0)); err == nil {
		t.Error("New() with zero buffer: error = nil")
	}

	d, err := New(&rampRenderer{block: 4}, WithBufferSize(10*time.Millisecond), WithLogger(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if d.cfg.bufferSize != 10*time.Millisecond || d.cfg.logger == nil {
		t.Fatalf("config = %+v", d.cfg)
	}
	if d.Stream() == nil {
		t.Fatal("Stream() = nil")
	}
}

func TestDevice_LifecycleWithoutOpen(t *testing.T) {
	d, err := New(&rampRenderer{block: 4})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := d.Start(); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("Start() error = %v, want ErrNotOpen", err)
	}
	if err := d.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if d.Playing() {
		t.Fatal("Playing() = true")
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if err := d.Start(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Start() after Close error = %v, want ErrClosed", err)
	}
	if err := d.Open(t.Context()); !errors.Is(err, ErrClosed) {
		t.Fatalf("Open() after Close error = %v, want ErrClosed", err)
	}
}

func TestDevice_OpenAfterCancelledWait(t *testing.T) {
	fb := useFakeBackend(t)
	d, err := New(&rampRenderer{block: 4})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if err := d.Open(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Open() error = %v, want context.Canceled", err)
	}
	if err := d.Start(); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("Start() before ready error = %v, want ErrNotOpen", err)
	}

	close(fb.ready)
	if err := d.Open(t.Context()); err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	if err := d.Open(t.Context()); err != nil {
		t.Fatalf("third Open() error = %v", err)
	}
	if len(fb.players) != 1 {
		t.Fatalf("created %d players, want 1", len(fb.players))
	}
}

func TestDevice_CloseReleasesPlayer(t *testing.T) {
	fb := useFakeBackend(t)
	close(fb.ready)
	d, err := New(&rampRenderer{block: 4})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := d.Open(t.Context()); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	p := fb.players[0]
	if !p.playing || !d.Playing() {
		t.Fatal("player not playing after Start")
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if p.playing || !p.closed {
		t.Fatalf("player after Close = %+v, want paused and closed", *p)
	}
	if fb.suspended != 1 {
		t.Fatalf("Suspend called %d times, want 1", fb.suspended)
	}
}
