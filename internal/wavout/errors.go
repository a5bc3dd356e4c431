package wavout

import "errors"

var (
	// ErrClosed is returned when writing to a closed Writer.
	ErrClosed = errors.New("wavout: writer closed")
	// ErrPartialFrame is returned when a sample slice is not a whole number of frames.
	ErrPartialFrame = errors.New("wavout: sample count is not a multiple of the channel count")
	// ErrEmptyRender is returned by Close when no frames were written.
	ErrEmptyRender = errors.New("wavout: no frames written")
	// ErrInvalidFile is returned when a file is not a readable PCM WAV.
	ErrInvalidFile = errors.New("wavout: not a valid WAV file")
)
