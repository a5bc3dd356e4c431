package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1] to signed integers of a fixed bit
// depth. Output is always limited to the integer range.
type Quantizer struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	shaper          *errorFeedback
	rng             *rand.Rand

	scale   float64
	limitLo int
	limitHi int
}

// NewQuantizer creates a Quantizer. The default configuration is 16-bit,
// triangular dither of 1 LSB and no noise shaping.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		bitDepth:        cfg.bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		shaper:          newErrorFeedback(cfg.feedback),
		rng:             cfg.rng,
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	q.limitHi = int(math.Exp2(float64(q.bitDepth-1))) - 1
	q.limitLo = -q.limitHi - 1
	q.scale = float64(q.limitHi)
	return q, nil
}

// ProcessInteger quantizes one sample.
func (q *Quantizer) ProcessInteger(input float64) int {
	if math.IsNaN(input) {
		input = 0
	}
	scaled := q.scale * input
	shaped := q.shaper.shape(scaled)
	rounded := math.Round(shaped + q.noise())
	// Clipping error is not fed back; it would replay as DC after the overload.
	q.shaper.record(rounded - shaped)
	return max(q.limitLo, min(q.limitHi, int(rounded)))
}

// ProcessBlock quantizes src into dst. dst must be at least as long as src.
func (q *Quantizer) ProcessBlock(dst []int, src []float64) {
	for i, x := range src {
		dst[i] = q.ProcessInteger(x)
	}
}

// Reset clears the noise shaper history.
func (q *Quantizer) Reset() {
	q.shaper.reset()
}

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherRectangular:
		return q.ditherAmplitude * (q.rng.Float64() - 0.5)
	case DitherTriangular:
		return q.ditherAmplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// Max returns the largest output value.
func (q *Quantizer) Max() int { return q.limitHi }

// Min returns the smallest output value.
func (q *Quantizer) Min() int { return q.limitLo }
