package script

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/synth/control"
)

const channels = 2

// Instrument is the engine surface a score drives. *engine.Engine
// satisfies it.
type Instrument interface {
	NoteOn(note int)
	NoteOff()
	ProcessAudio(out []float32, numFrames int)
	BlockSize() int
	Store() *control.Store
}

// Sink consumes interleaved stereo output. *wavout.Writer satisfies it.
type Sink interface {
	WriteFloat32(samples []float32) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(samples []float32) error

// WriteFloat32 calls f.
func (f SinkFunc) WriteFloat32(samples []float32) error { return f(samples) }

// Render plays sc on inst and writes every rendered block to sink. Events
// take effect at the first block boundary at or after their frame; blocks
// are split so that boundary is exact. It returns the number of frames
// written.
func Render(ctx context.Context, inst Instrument, sc *Score, sink Sink) (int64, error) {
	if sc.Frames <= 0 {
		return 0, ErrEmptyScore
	}

	block := inst.BlockSize()
	buf := make([]float32, block*channels)
	store := inst.Store()

	var pos int64
	next := 0
	for pos < sc.Frames {
		if err := ctx.Err(); err != nil {
			return pos, err
		}
		for next < len(sc.Events) && sc.Events[next].Frame <= pos {
			if err := apply(inst, store, sc.Events[next]); err != nil {
				return pos, err
			}
			next++
		}

		end := sc.Frames
		if next < len(sc.Events) {
			end = sc.Events[next].Frame
		}
		n := int(min(end-pos, int64(block)))
		inst.ProcessAudio(buf, n)
		if err := sink.WriteFloat32(buf[:n*channels]); err != nil {
			return pos, fmt.Errorf("script: write: %w", err)
		}
		pos += int64(n)
	}

	// Events placed after the last wait still update the instrument.
	for ; next < len(sc.Events); next++ {
		if err := apply(inst, store, sc.Events[next]); err != nil {
			return pos, err
		}
	}
	return pos, nil
}

func apply(inst Instrument, store *control.Store, e Event) error {
	switch e.Kind {
	case EventNoteOn:
		inst.NoteOn(e.Note)
	case EventNoteOff:
		inst.NoteOff()
	case EventSet:
		var err error
		store.Update(func(p *control.Params) {
			err = p.Set(e.Name, e.Value)
		})
		if err != nil {
			return fmt.Errorf("script: frame %d: %w", e.Frame, err)
		}
	default:
		return fmt.Errorf("script: unknown event kind %v", e.Kind)
	}
	return nil
}
