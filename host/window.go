// Package host provides the single-goroutine environment the field runs in:
// frame requests, one-shot timers, and pointer/resize listeners fed from a tcell screen
package host

import (
	"slices"
	"time"

	"github.com/lixenwraith/starfield/core"
)

// EventKind identifies a host signal
type EventKind uint8

const (
	EventPointerMove EventKind = iota
	EventResize
)

// String returns the event kind name
func (k EventKind) String() string {
	switch k {
	case EventPointerMove:
		return "PointerMove"
	case EventResize:
		return "Resize"
	default:
		return "Unknown"
	}
}

// Event is a pointer move (X, Y in cells) or a viewport resize (Width, Height in cells)
type Event struct {
	Kind          EventKind
	X, Y          int
	Width, Height int
}

// Handler receives dispatched events
type Handler func(Event)

// FrameFunc is called once per display tick with the tick time
type FrameFunc func(now time.Time)

type (
	FrameID    uint64
	TimerID    uint64
	ListenerID uint64
)

type frameRequest struct {
	id FrameID
	fn FrameFunc
}

type timer struct {
	id  TimerID
	due time.Time
	fn  func()
}

type listener struct {
	id   ListenerID
	kind EventKind
	fn   Handler
}

// Window owns frame requests, timers and listeners
// All methods must be called from the goroutine that drives Tick and Dispatch
type Window struct {
	clock  core.TimeProvider
	nextID uint64

	frames    []frameRequest
	running   []frameRequest
	timers    []timer
	listeners []listener
}

// NewWindow creates an empty Window reading time from clock
func NewWindow(clock core.TimeProvider) *Window {
	return &Window{clock: clock}
}

func (w *Window) id() uint64 {
	w.nextID++
	return w.nextID
}

// RequestFrame schedules fn for the next Tick
// Requests made while a Tick is running are deferred to the following Tick
func (w *Window) RequestFrame(fn FrameFunc) FrameID {
	id := FrameID(w.id())
	w.frames = append(w.frames, frameRequest{id: id, fn: fn})
	return id
}

// CancelFrame drops a pending frame request, including one queued in the Tick currently running
// Unknown ids are ignored
func (w *Window) CancelFrame(id FrameID) {
	match := func(f frameRequest) bool { return f.id == id }
	w.frames = slices.DeleteFunc(w.frames, match)
	w.running = slices.DeleteFunc(w.running, match)
}

// After schedules fn to run on the first Tick at or past now+d
func (w *Window) After(d time.Duration, fn func()) TimerID {
	id := TimerID(w.id())
	w.timers = append(w.timers, timer{id: id, due: w.clock.Now().Add(d), fn: fn})
	return id
}

// StopTimer cancels a pending timer; unknown ids are ignored
func (w *Window) StopTimer(id TimerID) {
	w.timers = slices.DeleteFunc(w.timers, func(t timer) bool { return t.id == id })
}

// Listen registers fn for events of kind
func (w *Window) Listen(kind EventKind, fn Handler) ListenerID {
	id := ListenerID(w.id())
	w.listeners = append(w.listeners, listener{id: id, kind: kind, fn: fn})
	return id
}

// Unlisten removes a listener; unknown ids are ignored
func (w *Window) Unlisten(id ListenerID) {
	w.listeners = slices.DeleteFunc(w.listeners, func(l listener) bool { return l.id == id })
}

// Listeners returns the number of registered listeners of kind
func (w *Window) Listeners(kind EventKind) int {
	n := 0
	for _, l := range w.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}

// Pending returns the number of outstanding frame requests and timers
func (w *Window) Pending() (frames, timers int) {
	return len(w.frames), len(w.timers)
}

// Emit delivers ev to every listener of its kind in registration order
// A listener removed by an earlier handler in the same Emit is not called
func (w *Window) Emit(ev Event) {
	ids := make([]ListenerID, 0, len(w.listeners))
	for _, l := range w.listeners {
		if l.kind == ev.Kind {
			ids = append(ids, l.id)
		}
	}
	for _, id := range ids {
		if i := slices.IndexFunc(w.listeners, func(l listener) bool { return l.id == id }); i >= 0 {
			w.listeners[i].fn(ev)
		}
	}
}

// Tick fires due timers in due order, then runs the frame requests pending at entry
func (w *Window) Tick(now time.Time) {
	for {
		i := w.nextDue(now)
		if i < 0 {
			break
		}
		t := w.timers[i]
		w.timers = slices.Delete(w.timers, i, i+1)
		t.fn()
	}

	w.running, w.frames = w.frames, nil
	for len(w.running) > 0 {
		f := w.running[0]
		w.running = w.running[1:]
		f.fn(now)
	}
}

func (w *Window) nextDue(now time.Time) int {
	best := -1
	for i, t := range w.timers {
		if t.due.After(now) {
			continue
		}
		if best < 0 || t.due.Before(w.timers[best].due) {
			best = i
		}
	}
	return best
}
