package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("quarter period = %v, want 1", s[12])
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 256)
	b := DeterministicNoise(42, 0.5, 256)
	c := DeterministicNoise(43, 0.5, 256)
	RequireSliceNearlyEqual(t, a, b, 0)
	if d, _ := MaxAbsDiff(a, c); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}
	for i, v := range a {
		if math.Abs(v) > 0.5 {
			t.Fatalf("sample %d = %v exceeds amplitude", i, v)
		}
	}
}

func TestInterleaveAndChannel(t *testing.T) {
	st := Interleave([]float64{1, 2, 3}, 2)
	want := []float64{1, 1, 2, 2, 3, 3}
	RequireSliceNearlyEqual(t, st, want, 0)

	f32 := []float32{1, -1, 2, -2, 3, -3}
	RequireSliceNearlyEqual(t, Channel(f32, 1, 2), []float64{-1, -2, -3}, 0)
	if Channel(f32, 2, 2) != nil {
		t.Fatal("Channel() out of range should return nil")
	}
}
