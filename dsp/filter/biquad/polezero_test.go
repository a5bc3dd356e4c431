package biquad

import (
	"math/cmplx"
	"testing"
)

func TestPoles_ComplexPair(t *testing.T) {
	// (1 - 0.5e^{j0.5}z^-1)(1 - 0.5e^{-j0.5}z^-1)
	r, theta := 0.5, 0.5
	p := cmplx.Rect(r, theta)
	c := Coefficients{B0: 1, A1: -2 * real(p), A2: r * r}

	got := c.Poles()
	if !unorderedRootsClose(got, p, cmplx.Conj(p), 1e-12) {
		t.Fatalf("Poles() = %v, want %v and conjugate", got, p)
	}
	if !almostEqual(c.PoleRadius(), r, 1e-12) {
		t.Fatalf("PoleRadius() = %v, want %v", c.PoleRadius(), r)
	}
	if !c.Stable() {
		t.Fatal("Stable() = false for radius 0.5")
	}
}

func TestZeros_DoubleAtNyquist(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 1}
	got := c.Zeros()
	if !unorderedRootsClose(got, -1, -1, 1e-12) {
		t.Fatalf("Zeros() = %v, want double zero at -1", got)
	}
}

func TestZeros_FirstOrder(t *testing.T) {
	c := Coefficients{B0: 0, B1: 1, B2: -0.5}
	got := c.Zeros()
	if !rootsClose(got[0], 0.5, 1e-12) || got[1] != 0 {
		t.Fatalf("Zeros() = %v, want [0.5, 0]", got)
	}
}

func TestStable_Unstable(t *testing.T) {
	c := Coefficients{B0: 1, A1: -2.1, A2: 1.1}
	if c.Stable() {
		t.Fatalf("Stable() = true, poles %v", c.Poles())
	}
}

func TestPoleZeroPair(t *testing.T) {
	c := Coefficients{B0: 1, B1: -0.4, B2: 0.1, A1: -1.2, A2: 0.45}
	pair := c.PoleZeroPair()
	if !sameRootSet(pair.Poles, c.Poles(), 1e-12) {
		t.Fatalf("poles differ: %v vs %v", pair.Poles, c.Poles())
	}
	if !sameRootSet(pair.Zeros, c.Zeros(), 1e-12) {
		t.Fatalf("zeros differ: %v vs %v", pair.Zeros, c.Zeros())
	}
}

func unorderedRootsClose(got [2]complex128, want1, want2 complex128, tol float64) bool {
	return (rootsClose(got[0], want1, tol) && rootsClose(got[1], want2, tol)) ||
		(rootsClose(got[0], want2, tol) && rootsClose(got[1], want1, tol))
}

func sameRootSet(a, b [2]complex128, tol float64) bool {
	return unorderedRootsClose(a, b[0], b[1], tol)
}

func rootsClose(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}
