package calendar

import "time"

// Clock provides the current time. Tests pass a fixed clock.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// Today returns the key for the clock's current day.
func Today(c Clock) DateKey { return KeyOf(c.Now()) }
