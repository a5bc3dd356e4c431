package patchfile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cwbudde/algo-synth/dsp/synth/control"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 50 * time.Millisecond

type watchConfig struct {
	debounce time.Duration
	logger   *slog.Logger
	onReload func(control.Params, error)
}

// WatchOption configures a [Watcher].
type WatchOption func(*watchConfig) error

// WithDebounce sets the quiet period after the last change before reloading.
func WithDebounce(d time.Duration) WatchOption {
	return func(cfg *watchConfig) error {
		if d < 0 {
			return fmt.Errorf("patchfile: debounce must be >= 0: %v", d)
		}
		cfg.debounce = d
		return nil
	}
}

// WithLogger sets the logger for reload events.
func WithLogger(l *slog.Logger) WatchOption {
	return func(cfg *watchConfig) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// WithReloadHook registers fn to run after every reload attempt. err is
// non-nil when the file was rejected and the store left unchanged.
func WithReloadHook(fn func(control.Params, error)) WatchOption {
	return func(cfg *watchConfig) error {
		cfg.onReload = fn
		return nil
	}
}

// Watcher republishes a control file into a store whenever it changes.
type Watcher struct {
	path  string
	store *control.Store
	cfg   watchConfig
	fw    *fsnotify.Watcher
}

// NewWatcher watches path. The parent directory is watched so files
// replaced by rename are picked up.
func NewWatcher(path string, store *control.Store, opts ...WatchOption) (*Watcher, error) {
	cfg := watchConfig{debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("patchfile: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("patchfile: watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("patchfile: watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{path: abs, store: store, cfg: cfg, fw: fw}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.path }

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.cfg.debounce)
			} else {
				timer.Reset(w.cfg.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.Reload()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.cfg.logger.Warn("control file watch error", "path", w.path, "err", err)
		}
	}
}

// Reload loads the file now and publishes it if valid.
func (w *Watcher) Reload() {
	p, err := Load(w.path)
	if err != nil {
		w.cfg.logger.Warn("control file rejected", "path", w.path, "err", err)
	} else {
		w.store.Store(p)
		w.cfg.logger.Info("control file reloaded", "path", w.path)
	}
	if w.cfg.onReload != nil {
		w.cfg.onReload(p, err)
	}
}

// Close stops watching. Run returns once the event channels close.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
