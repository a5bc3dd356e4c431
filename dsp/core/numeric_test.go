package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, expected: 0},
		{name: "above", value: 2, lo: 0, hi: 1, expected: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
		{name: "nan", value: math.NaN(), lo: 20, hi: 20000, expected: 20},
		{name: "inf", value: math.Inf(1), lo: 20, hi: 20000, expected: 20000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0},
		{in: 0.25, want: 0.25},
		{in: 1, want: 0},
		{in: 1.75, want: 0.75},
		{in: 12.5, want: 0.5},
		{in: -0.25, want: 0.75},
		{in: -3.5, want: 0.5},
		{in: -1e-18, want: 0},
		{in: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		got := WrapPhase(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapPhase(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= 1 {
			t.Errorf("WrapPhase(%v) = %v, outside [0, 1)", tt.in, got)
		}
	}
}

func TestSemitonesToRatio(t *testing.T) {
	if got := SemitonesToRatio(12); !NearlyEqual(got, 2, 1e-12) {
		t.Fatalf("SemitonesToRatio(12) = %v, want 2", got)
	}
	if got := SemitonesToRatio(0); got != 1 {
		t.Fatalf("SemitonesToRatio(0) = %v, want 1", got)
	}
	if got := SemitonesToRatio(-12); !NearlyEqual(got, 0.5, 1e-12) {
		t.Fatalf("SemitonesToRatio(-12) = %v, want 0.5", got)
	}
}

func TestFlushDenormals(t *testing.T) {
	if FlushDenormals(1e-35) != 0 {
		t.Fatal("expected tiny value to flush to zero")
	}
	if FlushDenormals(-1e-35) != 0 {
		t.Fatal("expected tiny negative value to flush to zero")
	}
	if FlushDenormals(1e-3) != 1e-3 {
		t.Fatal("expected normal value to pass through")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}
