// Command synthrender renders a Lua note sequence through the synthesizer
// to a 16-bit WAV file and prints level, pitch and filter statistics.
//
// Usage:
//
//	synthrender [flags] sequence.lua
//	synthrender -analyze file.wav
//
// Examples:
//
//	synthrender -o lead.wav lead.lua
//	synthrender -patch bass.json -rate 48000 -o bass.wav bass.lua
//	synthrender -analyze lead.wav
//	synthrender -info
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-synth/dsp/dither"
	"github.com/cwbudde/algo-synth/dsp/filter/design/pass"
	"github.com/cwbudde/algo-synth/dsp/synth/control"
	"github.com/cwbudde/algo-synth/dsp/synth/engine"
	"github.com/cwbudde/algo-synth/internal/patchfile"
	"github.com/cwbudde/algo-synth/internal/report"
	"github.com/cwbudde/algo-synth/internal/script"
	"github.com/cwbudde/algo-synth/internal/wavout"
	"github.com/cwbudde/algo-synth/measure/level"
)

type options struct {
	out        string
	patch      string
	sampleRate int
	blockSize  int
	seed       int64
	dither     string
	shape      bool
	analyze    string
	info       bool
	verbose    bool
}

func main() {
	var opt options
	flag.StringVar(&opt.out, "o", "out.wav", "output WAV file")
	flag.StringVar(&opt.patch, "patch", "", "JSON control file applied before the script runs")
	flag.IntVar(&opt.sampleRate, "rate", 44100, "sample rate in Hz")
	flag.IntVar(&opt.blockSize, "block", 256, "engine block size in frames")
	flag.Int64Var(&opt.seed, "seed", 1, "noise and dither seed")
	flag.StringVar(&opt.dither, "dither", "triangular", "dither before 16-bit quantization: none, rectangular, triangular")
	flag.BoolVar(&opt.shape, "shape", false, "first-order noise shaping after dither")
	flag.StringVar(&opt.analyze, "analyze", "", "print statistics of an existing WAV file and exit")
	flag.BoolVar(&opt.info, "info", false, "print CPU features and exit")
	flag.BoolVar(&opt.verbose, "v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: synthrender [flags] sequence.lua\n\n")
		fmt.Fprintf(os.Stderr, "Renders a Lua note sequence to a 16-bit WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Script functions: note_on(n), note_off(), wait(seconds), set(name, value), log(msg)\n")
		fmt.Fprintf(os.Stderr, "Controls: %v\n\n", control.Names())
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logLevel := slog.LevelWarn
	if opt.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	var err error
	switch {
	case opt.info:
		err = report.CPU(os.Stdout, cpu.DetectFeatures())
	case opt.analyze != "":
		err = analyzeFile(os.Stdout, opt.analyze)
	case flag.NArg() != 1:
		flag.Usage()
		os.Exit(2)
	default:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = render(ctx, os.Stdout, logger, opt, flag.Arg(0))
		stop()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func render(ctx context.Context, w io.Writer, logger *slog.Logger, opt options, scriptPath string) error {
	params := control.Defaults()
	if opt.patch != "" {
		p, err := patchfile.Load(opt.patch)
		if err != nil {
			return err
		}
		params = p
	}
	ditherType, err := dither.ParseDitherType(opt.dither)
	if err != nil {
		return err
	}

	eng, err := engine.New(control.NewStore(params),
		engine.WithSampleRate(float64(opt.sampleRate)),
		engine.WithBlockSize(opt.blockSize),
		engine.WithSeed(opt.seed),
	)
	if err != nil {
		return err
	}

	sc, err := script.CompileFile(scriptPath, eng.SampleRate(), script.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("script compiled", "path", scriptPath, "events", len(sc.Events), "duration", sc.Duration())

	wavOpts := []wavout.Option{
		wavout.WithDither(ditherType),
		wavout.WithSeed(uint64(opt.seed)),
	}
	if opt.shape {
		wavOpts = append(wavOpts, wavout.WithNoiseShaping())
	}
	out, err := wavout.Create(opt.out, opt.sampleRate, engine.Channels, wavOpts...)
	if err != nil {
		return err
	}

	meter, err := level.NewMeter(engine.Channels)
	if err != nil {
		_ = out.Close()
		return err
	}
	capture := report.NewCapture(engine.Channels, report.DefaultCaptureFrames)
	sink := script.SinkFunc(func(s []float32) error {
		meter.Update(s)
		capture.Add(s)
		return out.WriteFloat32(s)
	})

	frames, err := script.Render(ctx, eng, sc, sink)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	logger.Info("render complete", "out", opt.out, "frames", frames)

	fmt.Fprintf(w, "%s: %d frames, %v\n", opt.out, frames, sc.Duration())
	if err := report.Levels(w, meter.Result()); err != nil {
		return err
	}
	res, perr := capture.Estimate(eng.SampleRate())
	if err := report.Pitch(w, res, perr); err != nil {
		return err
	}
	lp := pass.ResonantLP(params.Cutoff, params.Resonance, eng.SampleRate())
	return report.Filter(w, report.AnalyzeFilter(lp, params.Cutoff, eng.SampleRate()))
}

func analyzeFile(w io.Writer, path string) error {
	clip, err := wavout.ReadFile(path)
	if err != nil {
		return err
	}
	if clip.Frames() == 0 {
		return fmt.Errorf("%s: %w", path, wavout.ErrEmptyRender)
	}

	meter, err := level.NewMeter(clip.Channels)
	if err != nil {
		return err
	}
	meter.Update(clip.Samples)
	capture := report.NewCapture(clip.Channels, report.DefaultCaptureFrames)
	capture.Add(clip.Samples)

	fmt.Fprintf(w, "%s: %d Hz, %d ch, %d bit, %d frames\n",
		path, clip.SampleRate, clip.Channels, clip.BitDepth, clip.Frames())
	if err := report.Levels(w, meter.Result()); err != nil {
		return err
	}
	res, perr := capture.Estimate(float64(clip.SampleRate))
	return report.Pitch(w, res, perr)
}
