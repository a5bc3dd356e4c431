package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-synth/internal/wavout"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderAndAnalyze(t *testing.T) {
	dir := t.TempDir()
	seq := writeFile(t, dir, "seq.lua", `
set("attack", 0)
note_on(12)
wait(0.5)
note_off()
wait(0.6)
`)
	patch := writeFile(t, dir, "patch.json", `{"osc": [
		{"enabled": true, "waveform": "triangle", "offset": 0},
		{"enabled": false, "waveform": "saw", "offset": -2},
		{"enabled": false, "waveform": "noise", "offset": 3}
	], "cutoff": 20000}`)

	opt := options{
		out:        filepath.Join(dir, "out.wav"),
		patch:      patch,
		sampleRate: 44100,
		blockSize:  256,
		seed:       1,
		dither:     "none",
		shape:      true,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var b bytes.Buffer
	if err := render(context.Background(), &b, logger, opt, seq); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if !strings.Contains(b.String(), "48510 frames") {
		t.Errorf("render report lacks frame count:\n%s", b.String())
	}
	if !strings.Contains(b.String(), "pitch: 44") {
		t.Errorf("render report lacks 440 Hz pitch:\n%s", b.String())
	}
	if !strings.Contains(b.String(), "filter: cutoff 20000.0 Hz") || !strings.Contains(b.String(), "(stable)") {
		t.Errorf("render report lacks filter response:\n%s", b.String())
	}

	clip, err := wavout.ReadFile(opt.out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if clip.Frames() != 48510 || clip.Channels != 2 || clip.SampleRate != 44100 {
		t.Fatalf("clip = %d frames %d ch %d Hz", clip.Frames(), clip.Channels, clip.SampleRate)
	}

	b.Reset()
	if err := analyzeFile(&b, opt.out); err != nil {
		t.Fatalf("analyzeFile() error = %v", err)
	}
	if !strings.Contains(b.String(), "44100 Hz, 2 ch, 16 bit, 48510 frames") {
		t.Errorf("analyze header wrong:\n%s", b.String())
	}
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()
	seq := writeFile(t, dir, "seq.lua", "wait(0.1)")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := options{out: filepath.Join(dir, "o.wav"), sampleRate: 44100, blockSize: 256, dither: "triangular"}

	tests := []struct {
		name   string
		mutate func(*options)
		script string
	}{
		{"bad dither", func(o *options) { o.dither = "gaussian" }, seq},
		{"missing patch", func(o *options) { o.patch = filepath.Join(dir, "none.json") }, seq},
		{"bad rate", func(o *options) { o.sampleRate = 0 }, seq},
		{"missing script", func(*options) {}, filepath.Join(dir, "none.lua")},
		{"empty score", func(*options) {}, writeFile(t, dir, "empty.lua", "note_on(0)")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := base
			tt.mutate(&opt)
			if err := render(context.Background(), io.Discard, logger, opt, tt.script); err == nil {
				t.Fatal("render() error = nil")
			}
		})
	}
}
