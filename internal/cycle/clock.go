package cycle

import "time"

// Clock abstracts time.Now() so phase calculations can be tested
// against a fixed date.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
