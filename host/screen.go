package host

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/starfield/core"
)

// DefaultFrameInterval approximates a 60Hz display refresh
const DefaultFrameInterval = 16 * time.Millisecond

// Translate converts a tcell event into a host Event
// Mouse events become pointer moves at the cell under the pointer; other events are reported as not ok
func Translate(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		return Event{Kind: EventPointerMove, X: x, Y: y}, true
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Kind: EventResize, Width: w, Height: h}, true
	}
	return Event{}, false
}

// Dispatch translates ev and emits it to listeners
func (w *Window) Dispatch(ev tcell.Event) {
	if e, ok := Translate(ev); ok {
		w.Emit(e)
	}
}

// IsQuit reports whether ev is one of the exit keys: Esc, Ctrl-C or q
func IsQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q' || key.Rune() == 'Q'
	}
	return false
}

// Run pumps screen events and a frame ticker on the calling goroutine until ctx is done,
// the screen closes its event channel, or a quit key is pressed
func (w *Window) Run(ctx context.Context, screen tcell.Screen, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() { screen.ChannelEvents(events, quit) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if IsQuit(ev) {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
			}
			w.Dispatch(ev)

		case <-ticker.C:
			w.Tick(w.clock.Now())
		}
	}
}
