package keyboard

import "github.com/cwbudde/algo-synth/dsp/synth/control"

// Gate receives note events. *engine.Engine satisfies it.
type Gate interface {
	NoteOn(note int)
	NoteOff()
}

// Apply performs a on the gate or the control store. It returns false for
// KindQuit.
func Apply(a Action, g Gate, store *control.Store) bool {
	switch a.Kind {
	case KindNoteOn:
		g.NoteOn(a.Arg)
	case KindNoteOff:
		g.NoteOff()
	case KindOctaveDown:
		store.Update(func(p *control.Params) { p.Octave-- })
	case KindOctaveUp:
		store.Update(func(p *control.Params) { p.Octave++ })
	case KindToggleOsc:
		if a.Arg >= 0 && a.Arg < control.NumOscillators {
			store.Update(func(p *control.Params) { p.Osc[a.Arg].Enabled = !p.Osc[a.Arg].Enabled })
		}
	case KindQuit:
		return false
	}
	return true
}
