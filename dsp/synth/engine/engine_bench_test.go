package engine

import (
	"testing"

	"github.com/cwbudde/algo-synth/dsp/synth/control"
	"github.com/cwbudde/algo-synth/dsp/synth/osc"
)

func BenchmarkProcessAudio(b *testing.B) {
	for _, tc := range []struct {
		name    string
		enabled int
	}{
		{"one", 1},
		{"three", 3},
	} {
		b.Run(tc.name, func(b *testing.B) {
			p := control.Defaults()
			waves := []osc.Waveform{osc.Saw, osc.Triangle, osc.Noise}
			for i := range tc.enabled {
				p.Osc[i] = control.OscParams{Enabled: true, Waveform: waves[i]}
			}
			p.AutoAmount = 0.5
			e, err := New(control.NewStore(p), WithSeed(1))
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}
			e.NoteOn(0)
			out := make([]float32, 2*256)
			b.SetBytes(int64(len(out) * 4))
			b.ResetTimer()
			for range b.N {
				e.ProcessAudio(out, 256)
			}
		})
	}
}
