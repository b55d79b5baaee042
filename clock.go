package emitter

import (
	"time"
)

// Clock is the time source of the transmitter loop.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time

	// After waits for the duration to elapse and then sends the current time.
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
