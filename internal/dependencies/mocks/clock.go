package mocks

import (
	"time"

	"github.com/wordrush/wordrush/internal/dependencies/clock"
)

// MockClock is a manually driven clock. Tests advance it to trigger
// round deadlines and session expiry without sleeping.
type MockClock struct {
	now time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock frozen at the given instant
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the frozen instant
func (c *MockClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set jumps the clock to the given instant
func (c *MockClock) Set(t time.Time) {
	c.now = t
}
