package mousesim

import "time"

// Displacement converts the configured magnitude into pixels for one
// tick: magnitude is pixels per reference frame, so the result is
// magnitude * elapsed-seconds * ReferenceFPS. Halving the polling
// interval halves per-tick displacement but leaves per-second speed
// unchanged.
func Displacement(magnitude int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(magnitude) * elapsed.Seconds() * ReferenceFPS
}

// motionClock measures wall-clock time between loop iterations. Lap is
// called once at the top of every iteration, idle or not, so the first
// active tick after a re-enable sees roughly one interval of elapsed
// time instead of the whole idle span.
type motionClock struct {
	now  func() time.Time
	last time.Time
}

func newMotionClock(now func() time.Time) *motionClock {
	if now == nil {
		now = time.Now
	}
	return &motionClock{now: now}
}

// Lap returns the time since the previous Lap (or Reset) and restarts
// the measurement. The monotonic reading inside time.Time absorbs
// scheduling jitter from the sleep primitive.
func (c *motionClock) Lap() time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (c *motionClock) Reset() {
	c.last = time.Time{}
}
