// Package core holds process-wide plumbing: the time source and crash recovery that restores the terminal
package core

import "time"

// TimeProvider abstracts the wall clock so frame timing can be driven from tests
type TimeProvider interface {
	Now() time.Time
}

// SystemTime reads the real clock
type SystemTime struct{}

// Now returns time.Now()
func (SystemTime) Now() time.Time {
	return time.Now()
}
