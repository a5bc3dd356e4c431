package pitch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/window"
)

const defaultMinFreq = 20.0

// Config holds spectral pitch analysis parameters.
type Config struct {
	SampleRate float64
	FFTSize    int     // 0 selects the next power of two >= len(signal)
	MinFreq    float64 // lower search bound in Hz, default 20
	MaxFreq    float64 // upper search bound in Hz, default Nyquist
	WindowType window.Type
}

// Result holds a spectral pitch estimate.
type Result struct {
	Frequency float64 // interpolated peak frequency in Hz
	Bin       float64 // interpolated peak position in bins
	BinHz     float64 // bin spacing in Hz
	Amplitude float64 // peak amplitude, corrected for window gain
}

// Analyzer reuses its FFT plan and buffers across calls of one size.
type Analyzer struct {
	cfg    Config
	plan   *algofft.Plan[complex128]
	coeffs []float64
	in     []complex128
	out    []complex128
	re, im []float64
	mag    []float64
}

// NewAnalyzer prepares an analyzer for signals of length n.
func NewAnalyzer(n int, cfg Config) (*Analyzer, error) {
	if n <= 0 {
		return nil, ErrEmptySignal
	}
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("pitch sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}
	if cfg.FFTSize < n {
		cfg.FFTSize = nextPowerOf2(n)
	}
	if cfg.WindowType == window.TypeRectangular {
		cfg.WindowType = window.TypeHann
	}
	if cfg.MinFreq <= 0 {
		cfg.MinFreq = defaultMinFreq
	}
	if cfg.MaxFreq <= 0 || cfg.MaxFreq > cfg.SampleRate/2 {
		cfg.MaxFreq = cfg.SampleRate / 2
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("pitch: fft plan: %w", err)
	}

	bins := cfg.FFTSize/2 + 1
	return &Analyzer{
		cfg:    cfg,
		plan:   plan,
		coeffs: window.Generate(cfg.WindowType, n, window.WithPeriodic()),
		in:     make([]complex128, cfg.FFTSize),
		out:    make([]complex128, cfg.FFTSize),
		re:     make([]float64, bins),
		im:     make([]float64, bins),
		mag:    make([]float64, bins),
	}, nil
}

// Analyze is a one-shot estimate for signal.
func Analyze(signal []float64, cfg Config) (Result, error) {
	a, err := NewAnalyzer(len(signal), cfg)
	if err != nil {
		return Result{}, err
	}
	return a.Analyze(signal)
}

// Analyze estimates the fundamental of signal, whose length must match
// the analyzer.
func (a *Analyzer) Analyze(signal []float64) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}
	if len(signal) != len(a.coeffs) {
		return Result{}, fmt.Errorf("pitch: signal length %d, analyzer expects %d", len(signal), len(a.coeffs))
	}

	for i, x := range signal {
		a.in[i] = complex(x*a.coeffs[i], 0)
	}
	clear(a.in[len(signal):])

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Result{}, fmt.Errorf("pitch: fft: %w", err)
	}
	for i := range a.re {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}
	vecmath.Magnitude(a.mag, a.re, a.im)

	binHz := a.cfg.SampleRate / float64(a.cfg.FFTSize)
	maxBin := len(a.mag) - 1
	lo := clampInt(int(math.Ceil(a.cfg.MinFreq/binHz)), 1, maxBin)
	hi := clampInt(int(math.Floor(a.cfg.MaxFreq/binHz)), lo, maxBin)

	peak := lo
	for i := lo + 1; i <= hi; i++ {
		if a.mag[i] > a.mag[peak] {
			peak = i
		}
	}
	if a.mag[peak] == 0 {
		return Result{}, ErrNoPeak
	}

	bin, height := interpolatePeak(a.mag, peak)
	gain, _ := window.CoherentGain(a.coeffs)
	return Result{
		Frequency: bin * binHz,
		Bin:       bin,
		BinHz:     binHz,
		Amplitude: 2 * height / (float64(len(signal)) * gain),
	}, nil
}

// interpolatePeak fits a parabola through the log magnitudes around bin k
// and returns the vertex position and height.
func interpolatePeak(mag []float64, k int) (float64, float64) {
	if k <= 0 || k >= len(mag)-1 || mag[k-1] <= 0 || mag[k+1] <= 0 {
		return float64(k), mag[k]
	}
	a := math.Log(mag[k-1])
	b := math.Log(mag[k])
	c := math.Log(mag[k+1])
	den := a - 2*b + c
	if den == 0 {
		return float64(k), mag[k]
	}
	p := 0.5 * (a - c) / den
	return float64(k) + p, math.Exp(b - 0.25*(a-c)*p)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
