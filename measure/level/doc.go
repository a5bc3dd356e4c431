// Package level meters interleaved audio streams per channel.
//
// A [Meter] accumulates peak, RMS, DC offset, zero crossings, clipping and
// the higher moments block by block, so a render can be measured while it
// is produced without keeping the samples around.
package level
