package state

import "sync/atomic"

// Clock hands out publication revisions. Revisions are strictly increasing
// so observers can drop snapshots older than one they already hold.
type Clock struct {
	counter atomic.Uint64
}

// Tick advances the clock and returns the new revision.
func (c *Clock) Tick() uint64 {
	return c.counter.Add(1)
}

// Current returns the last revision handed out.
func (c *Clock) Current() uint64 {
	return c.counter.Load()
}
