// Package fade derives the field's opacity multiplier from elapsed time
package fade

import (
	"time"

	"github.com/lixenwraith/starfield/vmath"
)

// Controller holds the fade timeline, fixed at construction
// Alpha is 1 for the first Max of the timeline, then falls linearly to 0 over Fade
type Controller struct {
	Start time.Time
	Max   time.Duration
	Fade  time.Duration
}

// New creates a Controller starting at start
func New(start time.Time, active, fadeOut time.Duration) Controller {
	return Controller{Start: start, Max: active, Fade: fadeOut}
}

// AlphaAt returns the opacity multiplier in [0, 1] for now
func (c Controller) AlphaAt(now time.Time) float64 {
	return c.AlphaAfter(now.Sub(c.Start))
}

// AlphaAfter returns the opacity multiplier for an elapsed duration
func (c Controller) AlphaAfter(elapsed time.Duration) float64 {
	if elapsed <= c.Max {
		return 1
	}
	if c.Fade <= 0 {
		return 0
	}
	return vmath.Clamp01(1 - float64(elapsed-c.Max)/float64(c.Fade))
}

// Total returns the full active-plus-fade lifetime
func (c Controller) Total() time.Duration {
	return c.Max + c.Fade
}

// Active reports whether now is still inside the pointer-reactive phase
func (c Controller) Active(now time.Time) bool {
	return now.Sub(c.Start) <= c.Max
}

// Done reports whether the fade has completed at now
func (c Controller) Done(now time.Time) bool {
	return now.Sub(c.Start) >= c.Total()
}
