package pitch

import "errors"

var (
	// ErrEmptySignal is returned for a signal without samples.
	ErrEmptySignal = errors.New("pitch: empty signal")

	// ErrNoPeak is returned when the search range holds no energy.
	ErrNoPeak = errors.New("pitch: no spectral peak in range")
)
