package wavout

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/wav"
)

// Clip is a decoded PCM file with samples normalized to [-1, 1).
type Clip struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Samples    []float32 // interleaved
}

// Frames returns the number of frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// ReadFile decodes the PCM WAV file at path.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavout: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a PCM WAV stream.
func Read(rs io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavout: decode: %w", err)
	}
	bits := int(dec.BitDepth)
	if bits <= 0 || bits > 32 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrInvalidFile, bits)
	}

	full := math.Exp2(float64(bits - 1))
	samples := make([]float32, len(pcm.Data))
	for i, v := range pcm.Data {
		samples[i] = float32(float64(v) / full)
	}
	return &Clip{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   bits,
		Samples:    samples,
	}, nil
}
