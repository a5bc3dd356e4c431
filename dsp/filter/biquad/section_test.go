package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// directFormI is a straightforward reference used to check State.Process.
func directFormI(c Coefficients, in []float64) []float64 {
	out := make([]float64, len(in))
	var x1, x2, y1, y2 float64
	for i, x := range in {
		y := c.B0*x + c.B1*x1 + c.B2*x2 - c.A1*y1 - c.A2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		out[i] = y
	}
	return out
}

func TestSection_Passthrough(t *testing.T) {
	s := NewSection(passthrough())
	for _, x := range []float64{1, -0.5, 0.25, 0, 3} {
		if got := s.ProcessSample(x); got != x {
			t.Fatalf("ProcessSample(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestSection_MatchesReference(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.6, A2: 0.25}
	in := make([]float64, 64)
	for i := range in {
		in[i] = math.Sin(float64(i) * 0.3)
	}
	want := directFormI(c, in)

	s := NewSection(c)
	for i, x := range in {
		if got := s.ProcessSample(x); !almostEqual(got, want[i], eps) {
			t.Fatalf("sample %d: got %.15f, want %.15f", i, got, want[i])
		}
	}
}

func TestSection_ProcessBlockMatchesSample(t *testing.T) {
	c := Coefficients{B0: 0.3, B1: -0.1, B2: 0.05, A1: -0.9, A2: 0.3}
	in := []float64{1, 0, 0, 0.5, -0.5, 0.25, 0, 0, 0, 0}

	a := NewSection(c)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = a.ProcessSample(x)
	}

	b := NewSection(c)
	buf := append([]float64(nil), in...)
	b.ProcessBlock(buf)

	for i := range want {
		if !almostEqual(buf[i], want[i], eps) {
			t.Fatalf("ProcessBlock[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestState_SharedCoefficientsIndependentHistory(t *testing.T) {
	c := Coefficients{B0: 0.5, B1: 0.5, A1: -0.5}
	var left, right State

	left.Process(&c, 1)
	left.Process(&c, 1)

	// right has seen nothing, so its first output is B0*x.
	if got := right.Process(&c, 1); !almostEqual(got, 0.5, eps) {
		t.Fatalf("right first output = %v, want 0.5", got)
	}
	if left.History() == right.History() {
		t.Fatal("channels share history")
	}
}

func TestState_CoefficientSwapKeepsHistory(t *testing.T) {
	a := Coefficients{B0: 0.5, B1: 0.25, A1: -0.1}
	b := Coefficients{B0: 1, B1: 1, B2: 1}
	var s State
	s.Process(&a, 1)
	s.Process(&a, 2)

	// With b, the output depends only on the last two inputs.
	if got := s.Process(&b, 3); !almostEqual(got, 6, eps) {
		t.Fatalf("after swap got %v, want 6", got)
	}
}

func TestState_ResetAndHistory(t *testing.T) {
	c := Coefficients{B0: 1, A1: -0.5}
	var s State
	s.Process(&c, 1)
	s.Process(&c, 1)

	h := s.History()
	if h[0] != 1 || h[1] != 1 {
		t.Fatalf("input taps = %v", h[:2])
	}

	var restored State
	restored.SetHistory(h)
	if restored != s {
		t.Fatal("SetHistory did not restore state")
	}

	s.Reset()
	if s.History() != [4]float64{} {
		t.Fatalf("Reset left history %v", s.History())
	}
}

func TestState_DecaysToZero(t *testing.T) {
	c := Coefficients{B0: 1, A1: -1.8, A2: 0.81}
	var s State
	y := s.Process(&c, 1)
	for range 20000 {
		y = s.Process(&c, 0)
	}
	if y != 0 {
		t.Fatalf("tail = %g, want exact zero after denormal flush", y)
	}
}

func TestSection_ProcessBlockZeroAlloc(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.5, B1: 0.5})
	buf := make([]float64, 256)
	allocs := testing.AllocsPerRun(100, func() {
		s.ProcessBlock(buf)
	})
	if allocs != 0 {
		t.Fatalf("ProcessBlock allocs = %v, want 0", allocs)
	}
}

func BenchmarkSection_ProcessBlock(b *testing.B) {
	s := NewSection(Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.6, A2: 0.25})
	buf := make([]float64, 512)
	for i := range buf {
		buf[i] = math.Sin(float64(i) * 0.01)
	}
	b.SetBytes(int64(len(buf) * 8))
	b.ResetTimer()
	for range b.N {
		s.ProcessBlock(buf)
	}
}
