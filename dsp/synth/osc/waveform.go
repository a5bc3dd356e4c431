package osc

import (
	"fmt"
	"strings"
)

// Waveform selects the shape produced by an Oscillator.
type Waveform int

const (
	// Triangle is a piecewise-linear triangle wave.
	Triangle Waveform = iota
	// Saw is a rising ramp.
	Saw
	// Noise is uniform white noise.
	Noise
)

var waveformNames = [...]string{
	Triangle: "triangle",
	Saw:      "saw",
	Noise:    "noise",
}

// Valid reports whether w is one of the defined waveforms.
func (w Waveform) Valid() bool {
	return w >= Triangle && w <= Noise
}

func (w Waveform) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform maps a case-insensitive name ("triangle", "tri", "saw",
// "sawtooth", "noise") to a Waveform.
func ParseWaveform(name string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "triangle", "tri":
		return Triangle, nil
	case "saw", "sawtooth":
		return Saw, nil
	case "noise", "white":
		return Noise, nil
	default:
		return Triangle, fmt.Errorf("osc: unknown waveform %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w Waveform) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("osc: invalid waveform %d", int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Waveform) UnmarshalText(text []byte) error {
	parsed, err := ParseWaveform(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
