// Package patchfile loads synth controls from JSON files and keeps a
// control store in sync with a file on disk.
//
// A file holds any subset of the control.Params fields; missing fields keep
// their default. The "osc" array, when present, must list all three slots;
// fields left out of an entry keep that slot's default:
//
//	{
//	  "osc": [
//	    {"enabled": true, "waveform": "saw", "offset": 0},
//	    {"enabled": false, "waveform": "saw", "offset": -2},
//	    {"enabled": false, "waveform": "noise", "offset": 3}
//	  ],
//	  "cutoff": 1200,
//	  "resonance": 0.6
//	}
package patchfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-synth/dsp/synth/control"
)

var (
	// ErrTrailingData is returned when a file holds more than one JSON value.
	ErrTrailingData = errors.New("patchfile: trailing data after control object")
	// ErrOscCount is returned when the "osc" array does not have one entry
	// per oscillator slot.
	ErrOscCount = errors.New("patchfile: osc array length")
)

// Parse decodes a control object from r over control.Defaults and returns
// the normalized result. Unknown fields and partial "osc" arrays are
// rejected.
func Parse(r io.Reader) (control.Params, error) {
	var raw json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return control.Params{}, fmt.Errorf("patchfile: decode: %w", err)
	}
	if dec.More() {
		return control.Params{}, ErrTrailingData
	}

	// A short array would zero the missing slots.
	var shape struct {
		Osc []json.RawMessage `json:"osc"`
	}
	if json.Unmarshal(raw, &shape) == nil && shape.Osc != nil && len(shape.Osc) != control.NumOscillators {
		return control.Params{}, fmt.Errorf("%w: got %d entries, want %d",
			ErrOscCount, len(shape.Osc), control.NumOscillators)
	}

	p := control.Defaults()
	strict := json.NewDecoder(bytes.NewReader(raw))
	strict.DisallowUnknownFields()
	if err := strict.Decode(&p); err != nil {
		return control.Params{}, fmt.Errorf("patchfile: decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return control.Params{}, fmt.Errorf("patchfile: %w", err)
	}
	return p.Normalize(), nil
}

// Load parses the file at path.
func Load(path string) (control.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return control.Params{}, fmt.Errorf("patchfile: open: %w", err)
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return control.Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
