package status

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Metric keys shared by the field components
const (
	FramesPainted     = "frames.painted"
	ParticlesRecycled = "particles.recycled"
	PointerMoves      = "pointer.moves"
	SurfaceResizes    = "surface.resizes"
	LastAlpha         = "fade.alpha"
)

// Gauge is a float64 stored atomically via its bit pattern
// Zero value reads 0.0
type Gauge struct {
	bits atomic.Uint64
}

// Set stores val
func (g *Gauge) Set(val float64) {
	g.bits.Store(math.Float64bits(val))
}

// Get loads the current value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Stats holds named counters and gauges
// Components cache the returned pointers at construction and write to them directly in the frame loop
type Stats struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64
	gauges   map[string]*Gauge
}

// NewStats creates an empty Stats
func NewStats() *Stats {
	return &Stats{
		counters: make(map[string]*atomic.Int64),
		gauges:   make(map[string]*Gauge),
	}
}

// Counter returns the counter for key, creating it on first use
func (s *Stats) Counter(key string) *atomic.Int64 {
	return lookup(&s.mu, s.counters, key)
}

// Gauge returns the gauge for key, creating it on first use
func (s *Stats) Gauge(key string) *Gauge {
	return lookup(&s.mu, s.gauges, key)
}

func lookup[T any](mu *sync.RWMutex, items map[string]*T, key string) *T {
	mu.RLock()
	ptr, ok := items[key]
	mu.RUnlock()
	if ok {
		return ptr
	}

	mu.Lock()
	defer mu.Unlock()
	if ptr, ok := items[key]; ok {
		return ptr
	}
	ptr = new(T)
	items[key] = ptr
	return ptr
}

// String renders all metrics as sorted key=value pairs
func (s *Stats) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parts := make([]string, 0, len(s.counters)+len(s.gauges))
	for k, v := range s.counters {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	}
	for k, v := range s.gauges {
		parts = append(parts, fmt.Sprintf("%s=%.3f", k, v.Get()))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
