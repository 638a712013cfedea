package engine

import "time"

// Countdown is a wall-clock countdown with a one-shot completion callback.
//
// Remaining time is always derived from now - start, never from a counter
// decremented per tick, so dropped or irregular frames cannot make it drift
// or fire twice. If the host stops calling Update the countdown simply never
// completes.
type Countdown struct {
	duration   time.Duration
	start      time.Time
	stoppedAt  time.Time
	active     bool
	fired      bool
	onComplete func(now time.Time)
}

// NewCountdown creates an idle countdown of the given length.
func NewCountdown(duration time.Duration, onComplete func(now time.Time)) *Countdown {
	return &Countdown{
		duration:   duration,
		onComplete: onComplete,
	}
}

// Arm starts a fresh countdown at now. Any previous run is forgotten.
func (c *Countdown) Arm(now time.Time) {
	c.start = now
	c.stoppedAt = time.Time{}
	c.active = true
	c.fired = false
}

// Stop freezes the countdown. Remaining time keeps its value at now.
// Stopping an inactive countdown is a no-op.
func (c *Countdown) Stop(now time.Time) {
	if !c.active {
		return
	}
	c.active = false
	c.stoppedAt = now
}

// Active reports whether the countdown is running.
func (c *Countdown) Active() bool {
	return c.active
}

// Fired reports whether the completion callback has run for this arming.
func (c *Countdown) Fired() bool {
	return c.fired
}

// Duration returns the configured length.
func (c *Countdown) Duration() time.Duration {
	return c.duration
}

// Deadline returns start + duration while the countdown is running.
func (c *Countdown) Deadline() (time.Time, bool) {
	if !c.active {
		return time.Time{}, false
	}
	return c.start.Add(c.duration), true
}

// Remaining returns the time left at now, never negative. An unarmed
// countdown reports its full duration.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if c.start.IsZero() {
		return c.duration
	}
	at := now
	if !c.active {
		at = c.stoppedAt
	}
	left := c.duration - at.Sub(c.start)
	if left < 0 {
		return 0
	}
	if left > c.duration {
		return c.duration
	}
	return left
}

// RemainingSeconds returns the whole seconds left, rounded up, as shown on
// a countdown display: 0.001 s left shows as 1.
func (c *Countdown) RemainingSeconds(now time.Time) int {
	left := c.Remaining(now)
	return int((left + time.Second - 1) / time.Second)
}

// Update fires the completion callback if the countdown is active and
// now - start >= duration. Returns true only on the call that fired.
func (c *Countdown) Update(now time.Time) bool {
	if !c.active || c.fired {
		return false
	}
	if now.Sub(c.start) < c.duration {
		return false
	}
	c.fired = true
	c.active = false
	c.stoppedAt = c.start.Add(c.duration)
	if c.onComplete != nil {
		c.onComplete(now)
	}
	return true
}
