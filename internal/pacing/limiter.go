// Package pacing caps the frame rate of a render loop.
package pacing

import "time"

// spinWindow is how long before the deadline Wait stops sleeping and spins.
const spinWindow = 200 * time.Microsecond

// Limiter holds frames to at most Limit per second. A zero or negative Limit
// disables it.
type Limiter struct {
	Limit int
	next  time.Time
}

// NewLimiter returns a Limiter for limit frames per second.
func NewLimiter(limit int) *Limiter {
	return &Limiter{Limit: limit}
}

// Interval is the frame period, or zero when unlimited.
func (l *Limiter) Interval() time.Duration {
	if l.Limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(l.Limit)
}

// Wait blocks until the next frame is due. It sleeps for most of the wait
// and spins for the last few microseconds.
func (l *Limiter) Wait() {
	target := l.Interval()
	if target == 0 {
		l.next = time.Time{}
		return
	}

	if l.next.IsZero() {
		l.next = time.Now().Add(target)
	} else {
		l.next = l.next.Add(target)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// after a hitch, resync instead of rushing to catch up
	if late := -time.Until(l.next); late > target {
		l.next = time.Now().Add(target)
	}
}

// Reset forgets the schedule, e.g. after the loop was paused.
func (l *Limiter) Reset() { l.next = time.Time{} }
