package osc_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/synth/osc"
)

func ExampleOscillator_GenerateBuffer() {
	o := osc.New()
	buf := make([]float64, 4*osc.Channels)

	// A quarter of the sample rate advances the phase by 0.25 per frame.
	o.GenerateBuffer(buf, 4, osc.Saw, 11025, 44100)

	fmt.Println(buf)
	fmt.Println(o.Phase())

	// Output:
	// [-0.5 -0.5 -0.25 -0.25 0 0 0.25 0.25]
	// 0
}
