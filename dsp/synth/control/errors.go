package control

import "errors"

var (
	// ErrUnknownControl is returned by Params.Set for an unrecognized name.
	ErrUnknownControl = errors.New("control: unknown control")

	// ErrInvalidValue is returned by Params.Set for a value that cannot be
	// applied, such as NaN or an undefined waveform index.
	ErrInvalidValue = errors.New("control: invalid value")
)
