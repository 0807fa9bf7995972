// Package render paints the particle field onto a drawing surface
package render

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/starfield/particle"
)

// ErrNoContext is returned by a Surface that cannot provide a 2D drawing context
var ErrNoContext = errors.New("render: 2d context unavailable")

// Context is an immediate-mode 2D drawing context in surface pixel space
type Context interface {
	Bounds() (width, height float64)
	Clear()
	// SetAlpha sets the opacity applied to subsequent fills, clamped to [0, 1]
	SetAlpha(a float64)
	FillCircle(x, y, r float64, c colorful.Color)
	// Present flushes the frame to the display
	Present()
}

// TextDrawer is implemented by contexts that can place text on the cell grid
type TextDrawer interface {
	Cells() (cols, rows int)
	DrawText(col, row int, text string, c colorful.Color)
}

// Surface is the drawing element the field is mounted on
type Surface interface {
	// Size re-reads the container dimensions in pixels
	Size() (width, height int)
	// Resize reallocates the backing bitmap, discarding its contents
	Resize(width, height int)
	Context2D() (Context, error)
}

// Overlay draws on top of the particles each frame, unaffected by fade
type Overlay interface {
	Draw(ctx Context)
}

// Renderer paints particles in a single fixed color
type Renderer struct {
	color    colorful.Color
	overlays []Overlay
}

// NewRenderer creates a Renderer filling particles with color
func NewRenderer(color colorful.Color, overlays ...Overlay) *Renderer {
	return &Renderer{color: color, overlays: overlays}
}

// Paint clears ctx, draws one circle per particle at alpha, then the overlays at full opacity
func (r *Renderer) Paint(ctx Context, particles []particle.Particle, alpha float64) {
	ctx.Clear()
	ctx.SetAlpha(alpha)
	for _, p := range particles {
		ctx.FillCircle(p.X, p.Y, p.Size, r.color)
	}
	ctx.SetAlpha(1)

	for _, o := range r.overlays {
		o.Draw(ctx)
	}
	ctx.Present()
}
