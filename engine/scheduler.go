package engine

import (
	"time"

	"github.com/lixenwraith/starfield/fade"
	"github.com/lixenwraith/starfield/host"
)

// Host is the environment the scheduler requests frames, timers and listeners from
type Host interface {
	RequestFrame(fn host.FrameFunc) host.FrameID
	CancelFrame(id host.FrameID)
	After(d time.Duration, fn func()) host.TimerID
	StopTimer(id host.TimerID)
	Listen(kind host.EventKind, fn host.Handler) host.ListenerID
	Unlisten(id host.ListenerID)
}

// State is the scheduler phase
type State uint8

const (
	// StateStopped requests no frames; the surface keeps its last painted frame
	StateStopped State = iota
	// StateActive requests a new frame after every paint
	StateActive
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateActive:
		return "Active"
	default:
		return "Unknown"
	}
}

// Scheduler drives a paint callback once per host frame until the fade timeline ends
// It also owns the resize listener and the timer that ends the pointer-reactive phase
type Scheduler struct {
	host Host
	fade fade.Controller

	paint    func(now time.Time)
	onResize func(ev host.Event)
	onQuiet  []func()
	onStop   func()

	state State

	frame        host.FrameID
	framePending bool
	timer        host.TimerID
	timerPending bool
	resize       host.ListenerID
	listening    bool
}

// NewScheduler creates a stopped scheduler for the fade timeline fc
func NewScheduler(h Host, fc fade.Controller) *Scheduler {
	return &Scheduler{host: h, fade: fc}
}

// OnResize sets the handler for resize events received while listening
func (s *Scheduler) OnResize(fn func(ev host.Event)) {
	s.onResize = fn
}

// OnQuiet adds a release hook run once when listeners are detached,
// either at the end of the active phase or on Stop
func (s *Scheduler) OnQuiet(fn func()) {
	s.onQuiet = append(s.onQuiet, fn)
}

// OnStop sets a hook run once on the transition to Stopped
func (s *Scheduler) OnStop(fn func()) {
	s.onStop = fn
}

// State returns the current phase
func (s *Scheduler) State() State {
	return s.state
}

// Start enters Active, paints the first frame at the fade start time and
// arms the timer that detaches listeners after the active phase
func (s *Scheduler) Start(paint func(now time.Time)) {
	if s.state == StateActive {
		return
	}
	s.paint = paint
	s.state = StateActive

	s.resize = s.host.Listen(host.EventResize, s.handleResize)
	s.listening = true
	s.timer = s.host.After(s.fade.Max, s.quiet)
	s.timerPending = true

	s.tick(s.fade.Start)
}

// Stop cancels the pending frame and timer and detaches all listeners
// Safe to call in any state and more than once
func (s *Scheduler) Stop() {
	if s.framePending {
		s.host.CancelFrame(s.frame)
		s.framePending = false
	}
	s.stopTimer()
	s.release()
	s.enterStopped()
}

func (s *Scheduler) tick(now time.Time) {
	s.framePending = false
	if s.state != StateActive {
		return
	}

	s.paint(now)
	// paint may tear the scheduler down
	if s.state != StateActive {
		return
	}

	if s.fade.Done(now) {
		s.stopTimer()
		s.release()
		s.enterStopped()
		return
	}
	s.frame = s.host.RequestFrame(s.tick)
	s.framePending = true
}

func (s *Scheduler) handleResize(ev host.Event) {
	if s.onResize != nil {
		s.onResize(ev)
	}
}

// quiet is the end-of-active-phase timer callback
func (s *Scheduler) quiet() {
	s.timerPending = false
	s.release()
}

func (s *Scheduler) stopTimer() {
	if s.timerPending {
		s.host.StopTimer(s.timer)
		s.timerPending = false
	}
}

func (s *Scheduler) release() {
	if !s.listening {
		return
	}
	s.host.Unlisten(s.resize)
	s.listening = false
	for _, fn := range s.onQuiet {
		fn()
	}
}

func (s *Scheduler) enterStopped() {
	if s.state == StateStopped {
		return
	}
	s.state = StateStopped
	if s.onStop != nil {
		s.onStop()
	}
}
