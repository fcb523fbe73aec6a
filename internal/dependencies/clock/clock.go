package clock

import "time"

// Clock provides time operations that can be mocked for testing.
// Round deadlines are always recomputed from stored timestamps via
// Now() rather than counted down, so a mocked clock drives the whole
// round lifecycle in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
