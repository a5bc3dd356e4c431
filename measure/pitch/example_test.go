package pitch_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/measure/pitch"
)

func ExampleAnalyze() {
	const sr = 44100.0
	sig := make([]float64, 8192)
	for i := range sig {
		sig[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/sr)
	}
	res, err := pitch.Analyze(sig, pitch.Config{SampleRate: sr})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.0f Hz\n", res.Frequency)
	// Output:
	// 440 Hz
}

func ExamplePeriodFromCrossings() {
	sig := make([]float64, 400)
	for i := range sig {
		sig[i] = math.Sin(2 * math.Pi * float64(i) / 80)
	}
	fmt.Printf("%.1f samples\n", pitch.PeriodFromCrossings(sig))
	// Output:
	// 80.0 samples
}
