package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameClockAdvance(t *testing.T) {
	f := NewFrameClock(60)

	elapsed, frames := f.Advance(t0)
	assert.Zero(t, elapsed)
	assert.Zero(t, frames)

	elapsed, frames = f.Advance(t0.Add(f.FrameDuration()))
	assert.Equal(t, f.FrameDuration(), elapsed)
	assert.InDelta(t, 1.0, frames, 1e-9)

	// A late frame covers proportionally more ground.
	_, frames = f.Advance(t0.Add(f.FrameDuration() + 50*time.Millisecond))
	assert.InDelta(t, 3.0, frames, 1e-3)
	assert.Equal(t, uint64(2), f.Frames())
}

func TestFrameClockCapsLongStalls(t *testing.T) {
	f := NewFrameClock(60)
	f.Reset(t0)

	elapsed, frames := f.Advance(t0.Add(10 * time.Second))
	assert.Equal(t, MaxFrameStep, elapsed)
	assert.InDelta(t, 15.0, frames, 1e-3)
}

func TestFrameClockBackwardsTime(t *testing.T) {
	f := NewFrameClock(0)
	f.Reset(t0)

	elapsed, frames := f.Advance(t0.Add(-time.Second))
	assert.Zero(t, elapsed)
	assert.Zero(t, frames)
	assert.Equal(t, time.Second/DefaultFrameRate, f.FrameDuration())
}
