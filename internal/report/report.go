// Package report formats host diagnostics: CPU features, output levels,
// pitch estimates and the filter section response.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-synth/measure/level"
	"github.com/cwbudde/algo-synth/measure/pitch"
)

// SIMDList names the vector extensions enabled in f, or "none".
func SIMDList(f cpu.Features) string {
	if f.ForceGeneric {
		return "none (forced generic)"
	}
	var names []string
	for _, ext := range []struct {
		on   bool
		name string
	}{
		{f.HasSSE2, "SSE2"},
		{f.HasAVX, "AVX"},
		{f.HasAVX2, "AVX2"},
		{f.HasAVX512, "AVX-512"},
		{f.HasNEON, "NEON"},
	} {
		if ext.on {
			names = append(names, ext.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " ")
}

// CPU writes the architecture and SIMD extensions used by the block
// kernels.
func CPU(w io.Writer, f cpu.Features) error {
	_, err := fmt.Fprintf(w, "arch: %s\nsimd: %s\n", f.Architecture, SIMDList(f))
	return err
}

// Levels writes one row per channel.
func Levels(w io.Writer, stats []level.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Channel\tFrames\tPeak [dBFS]\tRMS [dBFS]\tDC\tCrest\tZero X\tClipped\n")
	fmt.Fprintf(tw, "-------\t------\t-----------\t----------\t--\t-----\t------\t-------\n")
	for ch, s := range stats {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%+.4f\t%.2f\t%d\t%d\n",
			ch, s.Frames, dB(s.PeakdB), dB(s.RMSdB), s.DC, s.CrestFactor, s.ZeroCrossings, s.Clipped)
	}
	return tw.Flush()
}

// Pitch writes a pitch estimate, or the reason there is none.
func Pitch(w io.Writer, res pitch.Result, err error) error {
	if err != nil {
		_, werr := fmt.Fprintf(w, "pitch: n/a (%v)\n", err)
		return werr
	}
	_, werr := fmt.Fprintf(w, "pitch: %.2f Hz (bin %.2f, %.2f Hz/bin, amplitude %.3f)\n",
		res.Frequency, res.Bin, res.BinHz, res.Amplitude)
	return werr
}

func dB(v float64) string {
	if v < -999 {
		return "-inf"
	}
	return fmt.Sprintf("%.1f", v)
}
