// Package clock abstracts time for code that stamps records, so tests can
// pin the clock.
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/vttbridge/sheet-api/internal/pkg/clock Clock

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using system time.
type Real struct{}

// Now returns the current time.
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a real clock.
func New() Clock {
	return &Real{}
}

// Fixed implements Clock returning a single pinned instant, for tests.
type Fixed struct {
	T time.Time
}

// Now returns the pinned instant.
func (c *Fixed) Now() time.Time {
	return c.T
}
