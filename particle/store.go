// Package particle holds the fixed set of field particles and their per-frame drift
package particle

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/lixenwraith/starfield/vmath"
)

const (
	// DefaultCount is the number of particles in the field
	DefaultCount = 120
	// DefaultStrength scales the particle-to-pointer offset applied each frame
	// Positive pushes particles away from the pointer, negative pulls them in
	DefaultStrength = 0.02
	// MinSize is the smallest particle radius in pixels
	MinSize = 0.5
	// SizeSpan is the width of the random radius range above MinSize
	SizeSpan = 2.0
)

// Particle is a single dot in surface pixel space
type Particle struct {
	X, Y float64
	Size float64
}

// Inside reports whether the particle lies within [-Size, dim+Size] on both axes
func (p Particle) Inside(width, height float64) bool {
	return vmath.InRange(p.X, -p.Size, width+p.Size) &&
		vmath.InRange(p.Y, -p.Size, height+p.Size)
}

// Store owns the particle set; the count is fixed at construction
type Store struct {
	particles     []Particle
	width, height float64
	strength      float64
	rng           *rand.Rand
	recycled      *atomic.Int64
}

// Option configures a Store
type Option func(*Store)

// WithStrength overrides DefaultStrength
func WithStrength(k float64) Option {
	return func(s *Store) { s.strength = k }
}

// WithRecycleCounter reports each recycled particle to c
func WithRecycleCounter(c *atomic.Int64) Option {
	return func(s *Store) { s.recycled = c }
}

// NewStore seeds count particles uniformly within [0,width)x[0,height)
// Negative counts are treated as zero
func NewStore(count int, width, height float64, rng *rand.Rand, opts ...Option) *Store {
	if count < 0 {
		count = 0
	}
	s := &Store{
		particles: make([]Particle, count),
		width:     width,
		height:    height,
		strength:  DefaultStrength,
		rng:       rng,
	}
	for _, opt := range opts {
		opt(s)
	}

	for i := range s.particles {
		s.particles[i] = Particle{
			X:    s.rng.Float64() * width,
			Y:    s.rng.Float64() * height,
			Size: s.rng.Float64()*SizeSpan + MinSize,
		}
	}
	return s
}

// Advance moves every particle by strength times its offset from pointer,
// then recycles any particle that left the bounds to a fresh in-bounds position
func (s *Store) Advance(pointer vmath.Point) {
	for i := range s.particles {
		p := &s.particles[i]
		d := vmath.Point{X: p.X, Y: p.Y}.Sub(pointer).Scale(s.strength)
		p.X += d.X
		p.Y += d.Y

		if !p.Inside(s.width, s.height) {
			p.X = s.rng.Float64() * s.width
			p.Y = s.rng.Float64() * s.height
			if s.recycled != nil {
				s.recycled.Add(1)
			}
		}
	}
}

// Resize changes the recycle bounds
// Existing positions stay in the old coordinate space; particles outside the new bounds are recycled on the next Advance
func (s *Store) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// Bounds returns the current width and height
func (s *Store) Bounds() (width, height float64) {
	return s.width, s.height
}

// Len returns the particle count
func (s *Store) Len() int {
	return len(s.particles)
}

// Snapshot appends the current particles to dst and returns it
// Callers reuse dst across frames to avoid per-frame allocation
func (s *Store) Snapshot(dst []Particle) []Particle {
	return append(dst[:0], s.particles...)
}
