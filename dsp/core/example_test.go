package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(48000),
		core.WithBlockSize(128),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)

	// Output:
	// sampleRate=48000 blockSize=128
}

func ExampleWrapPhase() {
	fmt.Printf("%.2f %.2f %.2f\n", core.WrapPhase(1.25), core.WrapPhase(-0.25), core.WrapPhase(3))

	// Output:
	// 0.25 0.75 0.00
}
