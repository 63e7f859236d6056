package core

import (
	"sync"
	"time"
)

// Clock supplies the wall-clock time used for timers and cooldowns.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real system time with monotonic clock readings.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a controllable time source for tests and headless runs.
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualClock creates a manual clock starting at the given time.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Set replaces the current time.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// AdvanceMs moves the clock forward by a fractional number of milliseconds.
func (c *ManualClock) AdvanceMs(ms float64) {
	c.Advance(time.Duration(ms * float64(time.Millisecond)))
}
