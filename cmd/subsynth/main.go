// Command subsynth plays the synthesizer live from the computer keyboard.
//
// Usage:
//
//	subsynth [flags]
//
// The keys s e d r f g y h u j i k l play one octave from C, space releases
// the note, z and x change octave, 1 to 3 toggle the oscillators and q
// quits. With -patch the control file is reloaded whenever it is saved.
//
// Examples:
//
//	subsynth
//	subsynth -patch lead.json
//	subsynth -rate 48000 -buffer 10ms
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-vecmath/cpu"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-synth/dsp/synth/control"
	"github.com/cwbudde/algo-synth/dsp/synth/engine"
	"github.com/cwbudde/algo-synth/internal/device"
	"github.com/cwbudde/algo-synth/internal/keyboard"
	"github.com/cwbudde/algo-synth/internal/patchfile"
	"github.com/cwbudde/algo-synth/internal/report"
)

type options struct {
	patch      string
	sampleRate int
	blockSize  int
	buffer     time.Duration
	seed       int64
	info       bool
	verbose    bool
}

func main() {
	var opt options
	flag.StringVar(&opt.patch, "patch", "", "JSON control file, reloaded on change")
	flag.IntVar(&opt.sampleRate, "rate", 44100, "sample rate in Hz")
	flag.IntVar(&opt.blockSize, "block", 256, "engine block size in frames")
	flag.DurationVar(&opt.buffer, "buffer", device.DefaultBufferSize, "audio device buffer")
	flag.Int64Var(&opt.seed, "seed", 0, "noise seed (0 = random)")
	flag.BoolVar(&opt.info, "info", false, "print CPU features and exit")
	flag.BoolVar(&opt.verbose, "v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: subsynth [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays the synthesizer from the computer keyboard.\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", keyboard.Help)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logLevel := slog.LevelInfo
	if opt.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if opt.info {
		if err := report.CPU(os.Stdout, cpu.DetectFeatures()); err != nil {
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, logger, opt)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, opt options) error {
	params := control.Defaults()
	if opt.patch != "" {
		p, err := patchfile.Load(opt.patch)
		if err != nil {
			return err
		}
		params = p
	}
	store := control.NewStore(params)

	engOpts := []engine.Option{
		engine.WithSampleRate(float64(opt.sampleRate)),
		engine.WithBlockSize(opt.blockSize),
	}
	if opt.seed != 0 {
		engOpts = append(engOpts, engine.WithSeed(opt.seed))
	}
	eng, err := engine.New(store, engOpts...)
	if err != nil {
		return err
	}

	dev, err := device.New(eng, device.WithBufferSize(opt.buffer), device.WithLogger(logger))
	if err != nil {
		return err
	}
	defer dev.Close()
	if err := dev.Open(ctx); err != nil {
		return err
	}
	if err := dev.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if opt.patch != "" {
		w, err := patchfile.NewWatcher(opt.patch, store, patchfile.WithLogger(logger))
		if err != nil {
			return err
		}
		defer w.Close()
		g.Go(func() error { return w.Run(gctx) })
	}

	term, err := keyboard.Open(os.Stdin)
	switch {
	case errors.Is(err, keyboard.ErrNotTerminal):
		logger.Warn("stdin is not a terminal, keyboard disabled; press Ctrl-C to quit")
	case err != nil:
		return err
	default:
		fmt.Fprintf(os.Stderr, "%s\r\n", keyboard.Help)
		defer term.Close()
		g.Go(func() error {
			defer cancel()
			return keyboard.Run(gctx, term.Reader(), func(a keyboard.Action) bool {
				logger.Debug("key", "action", a.Kind, "arg", a.Arg)
				return keyboard.Apply(a, eng, store)
			})
		})
	}

	<-gctx.Done()
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("stopped", "frames", dev.Stream().Frames())
	return nil
}
