// Package keyboard turns a raw terminal into a one-octave note keyboard.
package keyboard

import "fmt"

// Kind identifies what a key press does.
type Kind int

const (
	KindNoteOn Kind = iota
	KindNoteOff
	KindOctaveDown
	KindOctaveUp
	KindToggleOsc
	KindQuit
)

var kindNames = [...]string{"note-on", "note-off", "octave-down", "octave-up", "toggle-osc", "quit"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Action is the decoded meaning of one key byte. Arg holds the note
// (0-12) for KindNoteOn and the oscillator slot for KindToggleOsc.
type Action struct {
	Kind Kind
	Arg  int
}

// NoteKeys lists the note keys from C upwards, one semitone apart.
const NoteKeys = "sedrfgyhujikl"

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// Lookup maps a key byte to its action. Letters are case-insensitive.
func Lookup(b byte) (Action, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	for i := range len(NoteKeys) {
		if NoteKeys[i] == b {
			return Action{Kind: KindNoteOn, Arg: i}, true
		}
	}
	switch b {
	case ' ':
		return Action{Kind: KindNoteOff}, true
	case '-', 'z':
		return Action{Kind: KindOctaveDown}, true
	case '+', '=', 'x':
		return Action{Kind: KindOctaveUp}, true
	case '1', '2', '3':
		return Action{Kind: KindToggleOsc, Arg: int(b - '1')}, true
	case 'q', keyCtrlC, keyEscape:
		return Action{Kind: KindQuit}, true
	}
	return Action{}, false
}

// Help is a one-line key legend.
const Help = "keys: s e d r f g y h u j i k l = notes, space = release, z/x = octave, 1-3 = toggle osc, q = quit"
