// Package testutil provides deterministic fakes for the ledger's injected
// capabilities: the recording clock and the event sink.
package testutil

import "sync"

// FixedClock is a thread-safe settable clock for tests.
//
// Unlike ledger.SystemClock it only moves when a test advances it, so
// recorded timestamps are exact and golden traces are stable.
type FixedClock struct {
	mu  sync.Mutex
	now int64
}

// NewFixedClock creates a clock frozen at the given unix time.
func NewFixedClock(now int64) *FixedClock {
	return &FixedClock{now: now}
}

// Now implements ledger.Clock.
func (c *FixedClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to a specific unix time.
func (c *FixedClock) Set(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by delta seconds.
func (c *FixedClock) Advance(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += delta
}
