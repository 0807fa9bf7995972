package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/starfield/vmath"
)

// upperHalf renders the top pixel as foreground and the bottom pixel as background
const upperHalf = '▀'

// minColors is the smallest palette that can show a fade
const minColors = 8

type textRun struct {
	col, row int
	text     string
	color    colorful.Color
}

// ScreenSurface rasterizes onto a tcell screen at two pixels per cell, stacked vertically
type ScreenSurface struct {
	screen     tcell.Screen
	background colorful.Color

	cols, rows int
	pix        []colorful.Color // cols x rows*2, row-major
	alpha      float64
	texts      []textRun
}

// NewScreenSurface sizes the bitmap to the current screen
func NewScreenSurface(screen tcell.Screen, background colorful.Color) *ScreenSurface {
	s := &ScreenSurface{screen: screen, background: background, alpha: 1}
	s.Resize(s.Size())
	return s
}

// Size returns the screen dimensions in pixels
func (s *ScreenSurface) Size() (width, height int) {
	cols, rows := s.screen.Size()
	return cols, rows * 2
}

// Resize reallocates the bitmap for width x height pixels
func (s *ScreenSurface) Resize(width, height int) {
	s.cols = max(width, 0)
	s.rows = max((height+1)/2, 0)
	s.pix = make([]colorful.Color, s.cols*s.rows*2)
	s.Clear()
}

// Context2D returns the surface itself, or ErrNoContext on screens without color
func (s *ScreenSurface) Context2D() (Context, error) {
	if s.screen.Colors() < minColors {
		return nil, ErrNoContext
	}
	return s, nil
}

// Bounds returns the bitmap dimensions in pixels
func (s *ScreenSurface) Bounds() (width, height float64) {
	return float64(s.cols), float64(s.rows * 2)
}

// Cells returns the bitmap dimensions in screen cells
func (s *ScreenSurface) Cells() (cols, rows int) {
	return s.cols, s.rows
}

// Clear resets every pixel to the background and drops queued text
func (s *ScreenSurface) Clear() {
	for i := range s.pix {
		s.pix[i] = s.background
	}
	s.texts = s.texts[:0]
}

// SetAlpha sets the blend factor toward the fill color for subsequent fills
func (s *ScreenSurface) SetAlpha(a float64) {
	s.alpha = vmath.Clamp01(a)
}

// FillCircle lights every pixel whose centre lies within r of (x, y)
// A circle smaller than one pixel lights the pixel containing its centre
func (s *ScreenSurface) FillCircle(x, y, r float64, c colorful.Color) {
	if s.alpha <= 0 {
		return
	}
	fill := s.background.BlendRgb(c, s.alpha)
	w, h := s.cols, s.rows*2

	x0 := max(int(math.Floor(x-r)), 0)
	x1 := min(int(math.Ceil(x+r)), w-1)
	y0 := max(int(math.Floor(y-r)), 0)
	y1 := min(int(math.Ceil(y+r)), h-1)

	hit := false
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := float64(px) + 0.5 - x
			dy := float64(py) + 0.5 - y
			if dx*dx+dy*dy <= r*r {
				s.pix[py*w+px] = fill
				hit = true
			}
		}
	}
	if hit {
		return
	}

	px, py := int(math.Floor(x)), int(math.Floor(y))
	if px >= 0 && px < w && py >= 0 && py < h {
		s.pix[py*w+px] = fill
	}
}

// DrawText queues text at a cell position; it is written over the pixels on Present
func (s *ScreenSurface) DrawText(col, row int, text string, c colorful.Color) {
	s.texts = append(s.texts, textRun{col: col, row: row, text: text, color: c})
}

// Present writes the bitmap and queued text to the screen and shows it
func (s *ScreenSurface) Present() {
	w := s.cols
	for row := 0; row < s.rows; row++ {
		for col := 0; col < w; col++ {
			top := s.pix[(row*2)*w+col]
			bottom := s.pix[(row*2+1)*w+col]
			style := tcell.StyleDefault.Foreground(TcellColor(top)).Background(TcellColor(bottom))
			s.screen.SetContent(col, row, upperHalf, nil, style)
		}
	}

	for _, t := range s.texts {
		if t.row < 0 || t.row >= s.rows {
			continue
		}
		col := t.col
		for _, r := range t.text {
			if col >= w {
				break
			}
			if col >= 0 {
				bg := s.pix[(t.row*2+1)*w+col]
				style := tcell.StyleDefault.Foreground(TcellColor(t.color)).Background(TcellColor(bg))
				s.screen.SetContent(col, t.row, r, nil, style)
			}
			col += runewidth.RuneWidth(r)
		}
	}

	s.screen.Show()
}
