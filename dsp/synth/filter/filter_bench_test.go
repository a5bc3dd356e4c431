package filter

import (
	"testing"

	"github.com/cwbudde/algo-synth/internal/testutil"
)

func BenchmarkProcessBuffer(b *testing.B) {
	for _, tc := range []struct {
		name string
		s    Settings
	}{
		{"static", Settings{Cutoff: 4000, Resonance: 0.5}},
		{"lfo", Settings{Cutoff: 4000, Resonance: 0.5, AutoAmount: 0.8, AutoFreq: 5}},
	} {
		b.Run(tc.name, func(b *testing.B) {
			f, _ := New(sampleRate)
			buf := stereo(testutil.DeterministicNoise(1, 0.5, 256))
			b.SetBytes(int64(len(buf) * 8))
			b.ResetTimer()
			for range b.N {
				f.ProcessBuffer(buf, 256, tc.s)
			}
		})
	}
}
