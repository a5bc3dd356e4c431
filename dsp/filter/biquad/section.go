package biquad

import "github.com/cwbudde/algo-synth/dsp/core"

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// State is the Direct Form I history of one channel.
type State struct {
	x1, x2 float64
	y1, y2 float64
}

// Process filters one sample through c and shifts the history.
func (s *State) Process(c *Coefficients, x float64) float64 {
	y := c.B0*x + c.B1*s.x1 + c.B2*s.x2 - c.A1*s.y1 - c.A2*s.y2
	s.x2 = s.x1
	s.x1 = x
	s.y2 = s.y1
	s.y1 = core.FlushDenormals(y)
	return y
}

// Reset clears the history to zero.
func (s *State) Reset() {
	*s = State{}
}

// History returns the taps as [x1, x2, y1, y2].
func (s *State) History() [4]float64 {
	return [4]float64{s.x1, s.x2, s.y1, s.y2}
}

// SetHistory restores taps previously returned by History.
func (s *State) SetHistory(h [4]float64) {
	s.x1, s.x2, s.y1, s.y2 = h[0], h[1], h[2], h[3]
}

// Section is a single biquad with coefficients and one channel of history.
type Section struct {
	Coefficients
	State
}

// NewSection returns a Section initialized with the given coefficients
// and zero history.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	return s.State.Process(&s.Coefficients, x)
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	c := &s.Coefficients
	for i, x := range buf {
		buf[i] = s.State.Process(c, x)
	}
}
