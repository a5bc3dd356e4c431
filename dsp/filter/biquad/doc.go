// Package biquad provides second-order IIR filter runtime primitives.
//
// [Coefficients] hold a normalized transfer function (a0 = 1):
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
//
// Processing uses Direct Form I: each [State] keeps its own two input and
// two output history taps. Because the history holds real signal values
// rather than internal filter state, coefficients can be swapped between
// samples (as a modulated cutoff does) without the state having to be
// reinterpreted, and several channels can share one coefficient set while
// keeping independent history.
//
// Coefficient design lives in dsp/filter/design.
package biquad
