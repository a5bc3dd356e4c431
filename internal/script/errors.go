package script

import "errors"

var (
	// ErrTooLong is raised when a script waits past the maximum duration.
	ErrTooLong = errors.New("script: sequence exceeds maximum duration")
	// ErrEmptyScore is returned when rendering a score of zero frames.
	ErrEmptyScore = errors.New("script: score has no duration")
)
