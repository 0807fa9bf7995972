package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/starfield/core"
	"github.com/lixenwraith/starfield/fade"
	"github.com/lixenwraith/starfield/host"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const frameStep = 16 * time.Millisecond

// advance ticks the window every frameStep until d has elapsed
func advance(w *host.Window, tp *core.MockTimeProvider, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frameStep {
		w.Tick(tp.Advance(frameStep))
	}
}

func newTestScheduler() (*Scheduler, *host.Window, *core.MockTimeProvider) {
	tp := core.NewMockTimeProvider(t0)
	w := host.NewWindow(tp)
	s := NewScheduler(w, fade.New(t0, 3*time.Second, 2*time.Second))
	return s, w, tp
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StateActive, "Active"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStartPaintsImmediately(t *testing.T) {
	s, w, _ := newTestScheduler()

	var painted []time.Time
	s.Start(func(now time.Time) { painted = append(painted, now) })

	if s.State() != StateActive {
		t.Fatalf("State() = %v, want Active", s.State())
	}
	if len(painted) != 1 || !painted[0].Equal(t0) {
		t.Fatalf("first paint = %v, want one paint at start", painted)
	}
	if frames, timers := w.Pending(); frames != 1 || timers != 1 {
		t.Errorf("Pending() = (%d, %d), want (1, 1)", frames, timers)
	}
	if w.Listeners(host.EventResize) != 1 {
		t.Error("resize listener not registered")
	}
}

func TestRunsUntilFadeCompletes(t *testing.T) {
	s, w, tp := newTestScheduler()

	paints := 0
	stops := 0
	s.OnStop(func() { stops++ })
	var last time.Time
	s.Start(func(now time.Time) {
		paints++
		last = now
	})

	advance(w, tp, 4900*time.Millisecond)
	if s.State() != StateActive {
		t.Fatalf("stopped early at %v", tp.Now().Sub(t0))
	}

	advance(w, tp, 200*time.Millisecond)
	if s.State() != StateStopped {
		t.Fatalf("State() = %v after 5.1s, want Stopped", s.State())
	}
	if stops != 1 {
		t.Errorf("OnStop ran %d times, want 1", stops)
	}
	if last.Sub(t0) < 5*time.Second {
		t.Errorf("last paint at %v, want at or past 5s", last.Sub(t0))
	}

	before := paints
	advance(w, tp, time.Second)
	if paints != before {
		t.Errorf("painted %d frames after Stopped", paints-before)
	}
	if frames, timers := w.Pending(); frames != 0 || timers != 0 {
		t.Errorf("Pending() = (%d, %d) after Stopped, want (0, 0)", frames, timers)
	}
}

func TestActivePhaseEndDetachesListeners(t *testing.T) {
	s, w, tp := newTestScheduler()

	quiet := 0
	resizes := 0
	s.OnQuiet(func() { quiet++ })
	s.OnResize(func(host.Event) { resizes++ })
	s.Start(func(time.Time) {})

	w.Emit(host.Event{Kind: host.EventResize, Width: 10, Height: 10})
	advance(w, tp, 3*time.Second)

	if quiet != 1 {
		t.Fatalf("OnQuiet ran %d times at end of active phase, want 1", quiet)
	}
	if w.Listeners(host.EventResize) != 0 {
		t.Error("resize listener still attached after active phase")
	}
	w.Emit(host.Event{Kind: host.EventResize, Width: 20, Height: 20})
	if resizes != 1 {
		t.Errorf("resizes = %d, want 1 (only the one during the active phase)", resizes)
	}
	if s.State() != StateActive {
		t.Error("scheduler must keep painting through the fade")
	}

	s.Stop()
	if quiet != 1 {
		t.Errorf("OnQuiet ran again on Stop: %d", quiet)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s, w, tp := newTestScheduler()

	paints := 0
	stops := 0
	quiet := 0
	s.OnStop(func() { stops++ })
	s.OnQuiet(func() { quiet++ })
	s.Start(func(time.Time) { paints++ })
	advance(w, tp, 100*time.Millisecond)

	s.Stop()
	s.Stop()

	if s.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", s.State())
	}
	if stops != 1 || quiet != 1 {
		t.Errorf("stops=%d quiet=%d, want 1 and 1", stops, quiet)
	}
	if frames, timers := w.Pending(); frames != 0 || timers != 0 {
		t.Errorf("Pending() = (%d, %d), want (0, 0)", frames, timers)
	}
	if w.Listeners(host.EventResize) != 0 {
		t.Error("resize listener leaked")
	}

	before := paints
	advance(w, tp, 6*time.Second)
	if paints != before {
		t.Errorf("%d paints after Stop", paints-before)
	}
}

func TestStopBeforeStart(t *testing.T) {
	s, _, _ := newTestScheduler()
	stops := 0
	s.OnStop(func() { stops++ })
	s.Stop()
	if stops != 0 {
		t.Error("OnStop ran for a scheduler that never started")
	}
}

func TestStopFromPaint(t *testing.T) {
	s, w, tp := newTestScheduler()

	paints := 0
	s.Start(func(time.Time) {
		paints++
		if paints == 3 {
			s.Stop()
		}
	})
	advance(w, tp, time.Second)

	if paints != 3 {
		t.Errorf("paints = %d, want 3", paints)
	}
	if frames, _ := w.Pending(); frames != 0 {
		t.Errorf("frame requested after Stop inside paint")
	}
}

func TestZeroDurationsStopAfterFirstFrame(t *testing.T) {
	tp := core.NewMockTimeProvider(t0)
	w := host.NewWindow(tp)
	s := NewScheduler(w, fade.New(t0, 0, 0))

	paints := 0
	s.Start(func(time.Time) { paints++ })

	if s.State() != StateStopped || paints != 1 {
		t.Errorf("State()=%v paints=%d, want Stopped after a single frame", s.State(), paints)
	}
	if frames, timers := w.Pending(); frames != 0 || timers != 0 {
		t.Errorf("Pending() = (%d, %d), want (0, 0)", frames, timers)
	}
}
