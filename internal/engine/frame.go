package engine

import "time"

// DefaultFrameRate is the display refresh rate that per-frame speeds are
// expressed against.
const DefaultFrameRate = 60

// MaxFrameStep caps how much simulated time a single frame may cover, so a
// suspended host does not teleport entities across the play area on resume.
const MaxFrameStep = 250 * time.Millisecond

// FrameClock converts wall-clock frame times into elapsed frame units.
//
// Speeds in this package are "pixels per frame at DefaultFrameRate"; a frame
// that arrives late advances proportionally further, so motion follows true
// elapsed time instead of callback cadence.
type FrameClock struct {
	rate    int
	last    time.Time
	started bool
	frames  uint64
}

// NewFrameClock creates a frame clock for the given nominal frame rate.
func NewFrameClock(rate int) *FrameClock {
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return &FrameClock{rate: rate}
}

// FrameDuration returns the nominal length of one frame.
func (f *FrameClock) FrameDuration() time.Duration {
	return time.Second / time.Duration(f.rate)
}

// Reset makes now the reference point for the next Advance.
func (f *FrameClock) Reset(now time.Time) {
	f.last = now
	f.started = true
	f.frames = 0
}

// Advance returns the time elapsed since the previous call and that time in
// nominal frames. The first call after construction returns zero.
// Time running backwards counts as zero elapsed.
func (f *FrameClock) Advance(now time.Time) (time.Duration, float64) {
	if !f.started {
		f.Reset(now)
		return 0, 0
	}
	elapsed := now.Sub(f.last)
	f.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > MaxFrameStep {
		elapsed = MaxFrameStep
	}
	f.frames++
	return elapsed, float64(elapsed) / float64(f.FrameDuration())
}

// Frames returns the number of frames advanced since the last Reset.
func (f *FrameClock) Frames() uint64 {
	return f.frames
}
