package engine

import "sync/atomic"

// Clock numbers recalculation passes with a monotonic counter.
//
// Pass numbers appear in logs and pass reports so repeated passes over
// the same sheet can be told apart when debugging. They never feed
// into computation - determinism does not depend on the counter.
//
// Thread-safety: safe for concurrent use (atomic operations), though
// the Sheet's single-writer design means only one goroutine typically
// calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next pass number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current pass number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
