package report

import "github.com/cwbudde/algo-synth/measure/pitch"

// DefaultCaptureFrames is the analysis length captured by a Capture.
const DefaultCaptureFrames = 16384

// Capture captures the left channel of interleaved output, starting at the
// first non-silent frame, until it holds a fixed number of frames.
type Capture struct {
	channels int
	buf      []float64
	started  bool
}

// NewCapture captures up to frames frames of the first channel.
func NewCapture(channels, frames int) *Capture {
	if frames <= 0 {
		frames = DefaultCaptureFrames
	}
	return &Capture{channels: max(channels, 1), buf: make([]float64, 0, frames)}
}

// Add feeds interleaved samples.
func (c *Capture) Add(samples []float32) {
	for i := 0; i+c.channels <= len(samples) && len(c.buf) < cap(c.buf); i += c.channels {
		x := float64(samples[i])
		if !c.started {
			if x == 0 {
				continue
			}
			c.started = true
		}
		c.buf = append(c.buf, x)
	}
}

// Signal returns the captured frames.
func (c *Capture) Signal() []float64 { return c.buf }

// Estimate runs spectral pitch analysis over the captured frames.
func (c *Capture) Estimate(sampleRate float64) (pitch.Result, error) {
	if len(c.buf) == 0 {
		return pitch.Result{}, pitch.ErrEmptySignal
	}
	return pitch.Analyze(c.buf, pitch.Config{SampleRate: sampleRate, MaxFreq: 5000})
}
