package clock

import "time"

// Timer is a cancellable scheduled callback
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was still
	// pending; a false result means the callback already ran or was
	// stopped before.
	Stop() bool
}

// Clock provides time and timer operations that can be mocked for testing
type Clock interface {
	Now() time.Time

	// AfterFunc schedules f to run in its own goroutine after d
	AfterFunc(d time.Duration, f func()) Timer
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

// AfterFunc schedules f on a system timer
func (c *RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
