package buffer

// Interleaved is a fixed-capacity frame buffer with channels stored
// interleaved (L R L R ... for stereo).
// DSP functions accept raw []float64; use Frames to bridge.
type Interleaved struct {
	samples   []float64
	channels  int
	maxFrames int
}

// New returns a zero-filled buffer holding up to maxFrames frames of the
// given channel count. Non-positive arguments are treated as 1.
func New(maxFrames, channels int) *Interleaved {
	if maxFrames <= 0 {
		maxFrames = 1
	}
	if channels <= 0 {
		channels = 1
	}
	return &Interleaved{
		samples:   make([]float64, maxFrames*channels),
		channels:  channels,
		maxFrames: maxFrames,
	}
}

// Channels returns the number of interleaved channels.
func (b *Interleaved) Channels() int { return b.channels }

// MaxFrames returns the frame capacity.
func (b *Interleaved) MaxFrames() int { return b.maxFrames }

// Samples returns the full backing slice.
func (b *Interleaved) Samples() []float64 { return b.samples }

// Frames returns the first numFrames frames as an interleaved slice.
// numFrames is clamped to [0, MaxFrames].
func (b *Interleaved) Frames(numFrames int) []float64 {
	return b.samples[:b.clampFrames(numFrames)*b.channels]
}

// Zero clears the first numFrames frames.
func (b *Interleaved) Zero(numFrames int) {
	clear(b.Frames(numFrames))
}

// FillFrame writes v into every channel of frame i.
func (b *Interleaved) FillFrame(i int, v float64) {
	base := i * b.channels
	for c := range b.channels {
		b.samples[base+c] = v
	}
}

// Channel copies channel ch of the first numFrames frames into dst and
// returns the number of frames copied.
func (b *Interleaved) Channel(dst []float64, ch, numFrames int) int {
	if ch < 0 || ch >= b.channels {
		return 0
	}
	n := min(b.clampFrames(numFrames), len(dst))
	for i := range n {
		dst[i] = b.samples[i*b.channels+ch]
	}
	return n
}

func (b *Interleaved) clampFrames(numFrames int) int {
	if numFrames < 0 {
		return 0
	}
	if numFrames > b.maxFrames {
		return b.maxFrames
	}
	return numFrames
}
