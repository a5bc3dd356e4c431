// Package device plays a synthesizer engine through the system audio
// output.
package device

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"
)

// Channels is the interleaved channel count delivered to the device.
const Channels = 2

const (
	bytesPerSample = 4
	frameBytes     = Channels * bytesPerSample
)

// Renderer fills interleaved stereo float32 frames. *engine.Engine
// satisfies it.
type Renderer interface {
	ProcessAudio(out []float32, numFrames int)
	BlockSize() int
	SampleRate() float64
}

// Stream adapts a Renderer to the io.Reader pull model of the audio
// device, encoding float32 little endian. Read is the audio callback and
// does not allocate.
type Stream struct {
	r      Renderer
	block  []float32
	frames atomic.Int64
}

// NewStream returns a Stream rendering in blocks of r.BlockSize() frames.
func NewStream(r Renderer) *Stream {
	return &Stream{
		r:     r,
		block: make([]float32, r.BlockSize()*Channels),
	}
}

// Read renders len(p)/8 frames into p. Trailing bytes that do not form a
// whole frame are left untouched.
func (s *Stream) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}

	blockFrames := len(s.block) / Channels
	off := 0
	for remaining := frames; remaining > 0; {
		n := min(remaining, blockFrames)
		s.r.ProcessAudio(s.block, n)
		for _, v := range s.block[:n*Channels] {
			binary.LittleEndian.PutUint32(p[off:], math.Float32bits(v))
			off += bytesPerSample
		}
		remaining -= n
	}
	s.frames.Add(int64(frames))
	return off, nil
}

// Frames returns the total number of frames rendered.
func (s *Stream) Frames() int64 { return s.frames.Load() }
