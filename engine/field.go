// Package engine runs the particle field: a two-state frame scheduler and the
// Field component that wires store, pointer tracker, fade and renderer to a surface
package engine

import (
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/starfield/core"
	"github.com/lixenwraith/starfield/fade"
	"github.com/lixenwraith/starfield/host"
	"github.com/lixenwraith/starfield/particle"
	"github.com/lixenwraith/starfield/pointer"
	"github.com/lixenwraith/starfield/render"
	"github.com/lixenwraith/starfield/status"
	"github.com/lixenwraith/starfield/vmath"
)

// Default timeline
const (
	DefaultMaxDuration  = 3 * time.Second
	DefaultFadeDuration = 2 * time.Second
)

// Config fixes the field parameters at construction
type Config struct {
	Count        int
	MaxDuration  time.Duration
	FadeDuration time.Duration
	Strength     float64
	Color        colorful.Color

	// PointerScale maps event cell coordinates to surface pixels
	PointerScale vmath.Point

	Overlays []render.Overlay

	// OnFrame receives the alpha of every painted frame
	OnFrame func(alpha float64)
	// OnStop runs once when the field stops, at the end of the fade or on Unmount
	OnStop func()
}

// DefaultConfig returns the hero-section field parameters
func DefaultConfig() Config {
	return Config{
		Count:        particle.DefaultCount,
		MaxDuration:  DefaultMaxDuration,
		FadeDuration: DefaultFadeDuration,
		Strength:     particle.DefaultStrength,
		Color:        render.White,
		PointerScale: vmath.Point{X: 1, Y: 1},
	}
}

// Field is the mountable particle field component
type Field struct {
	cfg   Config
	host  Host
	clock core.TimeProvider
	rng   *rand.Rand
	stats *status.Stats

	surface  render.Surface
	ctx      render.Context
	store    *particle.Store
	tracker  *pointer.Tracker
	fade     fade.Controller
	renderer *render.Renderer
	sched    *Scheduler
	scratch  []particle.Particle
	mounted  bool

	frames  *atomic.Int64
	resizes *atomic.Int64
	alpha   *status.Gauge
}

// NewField creates an unmounted field
func NewField(h Host, clock core.TimeProvider, rng *rand.Rand, stats *status.Stats, cfg Config) *Field {
	return &Field{
		cfg:      cfg,
		host:     h,
		clock:    clock,
		rng:      rng,
		stats:    stats,
		renderer: render.NewRenderer(cfg.Color, cfg.Overlays...),
		frames:   stats.Counter(status.FramesPainted),
		resizes:  stats.Counter(status.SurfaceResizes),
		alpha:    stats.Gauge(status.LastAlpha),
	}
}

// Mount seeds the particles, subscribes to pointer and resize events and paints the first frame
// A surface without a 2D context leaves the field disabled; Mount never fails
func (f *Field) Mount(surface render.Surface) {
	if f.mounted {
		return
	}
	ctx, err := surface.Context2D()
	if err != nil {
		log.Printf("starfield: field disabled: %v", err)
		return
	}

	w, h := surface.Size()
	surface.Resize(w, h)
	f.surface, f.ctx = surface, ctx

	f.store = particle.NewStore(f.cfg.Count, float64(w), float64(h), f.rng,
		particle.WithStrength(f.cfg.Strength),
		particle.WithRecycleCounter(f.stats.Counter(status.ParticlesRecycled)),
	)

	f.tracker = pointer.NewTracker(vmath.Point{X: float64(w) / 2, Y: float64(h) / 2}, f.cfg.PointerScale)
	f.tracker.CountMoves(f.stats.Counter(status.PointerMoves))
	f.tracker.Attach(f.host)

	f.fade = fade.New(f.clock.Now(), f.cfg.MaxDuration, f.cfg.FadeDuration)
	f.sched = NewScheduler(f.host, f.fade)
	f.sched.OnResize(f.resize)
	f.sched.OnQuiet(f.tracker.Detach)
	f.sched.OnStop(f.stopped)

	f.mounted = true
	log.Printf("starfield: mounted %d particles on %dx%d, active %v, fade %v",
		f.store.Len(), w, h, f.cfg.MaxDuration, f.cfg.FadeDuration)
	f.sched.Start(f.paint)
}

// Unmount cancels the pending frame, the end-of-phase timer and all listeners
// Safe on a disabled or already unmounted field
func (f *Field) Unmount() {
	if !f.mounted {
		return
	}
	f.sched.Stop()
	f.tracker.Detach()
	f.mounted = false
}

// State returns the scheduler phase; a disabled field is always Stopped
func (f *Field) State() State {
	if f.sched == nil {
		return StateStopped
	}
	return f.sched.State()
}

// Enabled reports whether the field obtained a drawing context
func (f *Field) Enabled() bool {
	return f.ctx != nil
}

func (f *Field) paint(now time.Time) {
	alpha := f.fade.AlphaAt(now)
	f.store.Advance(f.tracker.Position())
	f.scratch = f.store.Snapshot(f.scratch)
	f.renderer.Paint(f.ctx, f.scratch, alpha)

	f.frames.Add(1)
	f.alpha.Set(alpha)
	if f.cfg.OnFrame != nil {
		f.cfg.OnFrame(alpha)
	}
}

// resize rescales the bitmap; particle positions stay in the old coordinate space
func (f *Field) resize(host.Event) {
	w, h := f.surface.Size()
	f.surface.Resize(w, h)
	f.store.Resize(float64(w), float64(h))
	f.resizes.Add(1)
}

func (f *Field) stopped() {
	log.Printf("starfield: stopped, %s", f.stats)
	if f.cfg.OnStop != nil {
		f.cfg.OnStop()
	}
}
