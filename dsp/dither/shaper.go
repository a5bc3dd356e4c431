package dither

// errorFeedback subtracts weighted past quantization errors from the
// input, pushing the error spectrum towards high frequencies.
type errorFeedback struct {
	coeffs  []float64
	history []float64 // most recent error first
}

func newErrorFeedback(coeffs []float64) *errorFeedback {
	return &errorFeedback{
		coeffs:  coeffs,
		history: make([]float64, len(coeffs)),
	}
}

func (s *errorFeedback) shape(input float64) float64 {
	for i, c := range s.coeffs {
		input -= c * s.history[i]
	}
	return input
}

func (s *errorFeedback) record(err float64) {
	if len(s.history) == 0 {
		return
	}
	copy(s.history[1:], s.history)
	s.history[0] = err
}

func (s *errorFeedback) reset() {
	clear(s.history)
}
