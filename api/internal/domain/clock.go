package domain

import "time"

// Clock is injected everywhere time is compared so the state machines
// stay testable without wall-clock dependence.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
