// Package buffer provides fixed-capacity interleaved sample buffers for
// real-time block processing.
//
// An [Interleaved] buffer is sized once for the largest block a host will
// request and then re-sliced per call, so the audio thread never allocates.
package buffer
