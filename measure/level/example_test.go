package level_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/measure/level"
)

func ExampleMeter() {
	m, err := level.NewMeter(2)
	if err != nil {
		panic(err)
	}
	m.Update([]float32{0.5, 0.5, -0.5, -0.5})
	m.Update([]float32{0.5, 0.5, -0.5, -0.5})
	s := m.Channel(0)
	fmt.Printf("frames=%d peak=%.1f rms=%.1f zc=%d\n", s.Frames, s.Peak, s.RMS, s.ZeroCrossings)
	// Output:
	// frames=4 peak=0.5 rms=0.5 zc=3
}
