package fluid

import "time"

// clock gates per-refresh callbacks down to a target frame rate while still
// measuring dt between every pair of consecutive refreshes.
type clock struct {
	interval time.Duration
	then     time.Duration // last qualifying frame
	last     time.Duration // last refresh of any kind
	started  bool
}

func newClock(fps int) clock {
	return clock{interval: time.Second / time.Duration(max(fps, 1))}
}

// tick records a refresh at now. dt is the time since the previous refresh
// in seconds; qualifies reports whether more than one frame interval has
// passed since the last qualifying frame. The first refresh only anchors
// the clock.
func (c *clock) tick(now time.Duration) (dt float64, qualifies bool) {
	if !c.started {
		c.started = true
		c.then, c.last = now, now
		return 0, false
	}

	if now > c.last {
		dt = (now - c.last).Seconds()
	}
	c.last = now

	elapsed := now - c.then
	if elapsed <= c.interval {
		return dt, false
	}
	c.then = now - elapsed%c.interval
	return dt, true
}
