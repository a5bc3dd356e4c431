package control

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/cwbudde/algo-synth/dsp/synth/osc"
)

// Names returns every name accepted by Set and Get, sorted.
func Names() []string {
	names := []string{
		"attack", "release", "sustain",
		"cutoff", "resonance", "auto_amount", "auto_freq",
		"volume", "octave",
	}
	for i := 1; i <= NumOscillators; i++ {
		names = append(names,
			fmt.Sprintf("osc%d.enabled", i),
			fmt.Sprintf("osc%d.waveform", i),
			fmt.Sprintf("osc%d.offset", i),
		)
	}
	slices.Sort(names)
	return names
}

// Set assigns a control by name. Booleans are true for any non-zero value,
// waveforms take their index and octave is rounded. The result is not
// normalized.
func (p *Params) Set(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidValue, name, value)
	}
	if f := p.scalar(name); f != nil {
		*f = value
		return nil
	}
	if name == "octave" {
		p.Octave = int(math.Round(value))
		return nil
	}
	slot, field, ok := splitOsc(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	o := &p.Osc[slot]
	switch field {
	case "enabled":
		o.Enabled = value != 0
	case "offset":
		o.Offset = value
	case "waveform":
		w := osc.Waveform(int(value))
		if float64(int(value)) != value || !w.Valid() {
			return fmt.Errorf("%w: %s = %v", ErrInvalidValue, name, value)
		}
		o.Waveform = w
	default:
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	return nil
}

// Get reads a control by name using the same encoding as Set.
func (p *Params) Get(name string) (float64, error) {
	if f := p.scalar(name); f != nil {
		return *f, nil
	}
	if name == "octave" {
		return float64(p.Octave), nil
	}
	slot, field, ok := splitOsc(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	o := p.Osc[slot]
	switch field {
	case "enabled":
		if o.Enabled {
			return 1, nil
		}
		return 0, nil
	case "offset":
		return o.Offset, nil
	case "waveform":
		return float64(o.Waveform), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
}

func (p *Params) scalar(name string) *float64 {
	switch name {
	case "attack":
		return &p.Attack
	case "release":
		return &p.Release
	case "sustain":
		return &p.Sustain
	case "cutoff":
		return &p.Cutoff
	case "resonance":
		return &p.Resonance
	case "auto_amount":
		return &p.AutoAmount
	case "auto_freq":
		return &p.AutoFreq
	case "volume":
		return &p.Volume
	}
	return nil
}

// splitOsc parses "oscN.field" with N in 1..NumOscillators.
func splitOsc(name string) (slot int, field string, ok bool) {
	prefix, field, found := strings.Cut(name, ".")
	if !found || len(prefix) != 4 || !strings.HasPrefix(prefix, "osc") {
		return 0, "", false
	}
	n := int(prefix[3] - '0')
	if n < 1 || n > NumOscillators {
		return 0, "", false
	}
	return n - 1, field, true
}
