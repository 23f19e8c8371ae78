package game

import (
	"time"
)

// DefaultTickRate is the viewer's target ticks per second.
const DefaultTickRate = 60

// TickLimiter paces the main loop to a fixed tick rate.
type TickLimiter struct {
	next  time.Time
	limit int
}

// NewTickLimiter creates a limiter for limit ticks per second. A limit of
// zero or less disables waiting.
func NewTickLimiter(limit int) *TickLimiter {
	return &TickLimiter{limit: limit}
}

// SetLimit changes the tick rate and restarts pacing.
func (f *TickLimiter) SetLimit(limit int) {
	f.limit = limit
	f.next = time.Time{}
}

// Wait blocks until the next tick should start.
// Uses a hybrid sleep/spin approach for better precision on high tick rates.
func (f *TickLimiter) Wait() {
	if f.limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(f.limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// busy-wait for the final few microseconds
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// If we're significantly late (e.g., hitch), resync to avoid drift
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
