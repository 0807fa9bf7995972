// Package pointer tracks the last known pointer position in surface pixel space
package pointer

import (
	"sync/atomic"

	"github.com/lixenwraith/starfield/host"
	"github.com/lixenwraith/starfield/vmath"
)

// EventTarget is the listener registry the tracker subscribes to
type EventTarget interface {
	Listen(kind host.EventKind, fn host.Handler) host.ListenerID
	Unlisten(id host.ListenerID)
}

// Tracker is the single writer of the pointer position
type Tracker struct {
	pos   vmath.Point
	scale vmath.Point

	target   EventTarget
	id       host.ListenerID
	attached bool

	moves *atomic.Int64
}

// NewTracker starts at origin (normally the surface centre)
// scale maps event cell coordinates into surface pixels
func NewTracker(origin, scale vmath.Point) *Tracker {
	return &Tracker{pos: origin, scale: scale}
}

// CountMoves reports every handled pointer event to c
func (t *Tracker) CountMoves(c *atomic.Int64) {
	t.moves = c
}

// Attach subscribes to pointer-move events on target
// A tracker that is already attached is moved to the new target
func (t *Tracker) Attach(target EventTarget) {
	t.Detach()
	t.target = target
	t.id = target.Listen(host.EventPointerMove, t.handle)
	t.attached = true
}

// Detach removes the listener; safe to call repeatedly
func (t *Tracker) Detach() {
	if !t.attached {
		return
	}
	t.target.Unlisten(t.id)
	t.attached = false
	t.target = nil
}

// Attached reports whether the tracker currently receives events
func (t *Tracker) Attached() bool {
	return t.attached
}

// Position returns the last pointer position
func (t *Tracker) Position() vmath.Point {
	return t.pos
}

func (t *Tracker) handle(ev host.Event) {
	t.pos = vmath.Point{X: float64(ev.X), Y: float64(ev.Y)}.Mul(t.scale)
	if t.moves != nil {
		t.moves.Add(1)
	}
}
