// Package testutil holds signal generators and tolerance checks shared by
// the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Interleave copies mono into every channel of a new interleaved buffer.
func Interleave(mono []float64, channels int) []float64 {
	out := make([]float64, len(mono)*channels)
	for i, v := range mono {
		for c := range channels {
			out[i*channels+c] = v
		}
	}
	return out
}

// Channel extracts channel ch of an interleaved float32 buffer as float64.
func Channel(buf []float32, ch, channels int) []float64 {
	if channels <= 0 || ch < 0 || ch >= channels {
		return nil
	}
	out := make([]float64, len(buf)/channels)
	for i := range out {
		out[i] = float64(buf[i*channels+ch])
	}
	return out
}
