package engine

import (
	"math"
	"sync/atomic"
)

// gate carries note events from control goroutines to the audio path.
// Every NoteOn bumps gen so a retrigger between two buffers is not lost
// even when the note stays on.
type gate struct {
	freq atomic.Uint64 // math.Float64bits
	on   atomic.Bool
	gen  atomic.Uint64
}

func (g *gate) noteOn(freq float64) {
	g.freq.Store(math.Float64bits(freq))
	g.on.Store(true)
	g.gen.Add(1)
}

func (g *gate) noteOff() {
	g.on.Store(false)
}

func (g *gate) frequency() float64 {
	return math.Float64frombits(g.freq.Load())
}
