package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/starfield/particle"
)

// recordingContext logs every call for order assertions
type recordingContext struct {
	calls []string
}

func (r *recordingContext) Bounds() (float64, float64) { return 800, 600 }
func (r *recordingContext) Clear()                      { r.calls = append(r.calls, "clear") }
func (r *recordingContext) SetAlpha(a float64)          { r.calls = append(r.calls, fmt.Sprintf("alpha %.2f", a)) }
func (r *recordingContext) Present()                    { r.calls = append(r.calls, "present") }
func (r *recordingContext) FillCircle(x, y, rad float64, c colorful.Color) {
	r.calls = append(r.calls, fmt.Sprintf("circle %.0f,%.0f r%.1f %s", x, y, rad, c.Hex()))
}

type overlayFunc func(Context)

func (f overlayFunc) Draw(ctx Context) { f(ctx) }

func TestPaintOrder(t *testing.T) {
	ctx := &recordingContext{}
	overlay := overlayFunc(func(Context) { ctx.calls = append(ctx.calls, "overlay") })
	r := NewRenderer(White, overlay)

	r.Paint(ctx, []particle.Particle{
		{X: 10, Y: 20, Size: 1.5},
		{X: 30, Y: 40, Size: 0.5},
	}, 0.5)

	want := []string{
		"clear",
		"alpha 0.50",
		"circle 10,20 r1.5 #ffffff",
		"circle 30,40 r0.5 #ffffff",
		"alpha 1.00",
		"overlay",
		"present",
	}
	if got := strings.Join(ctx.calls, "\n"); got != strings.Join(want, "\n") {
		t.Errorf("paint calls:\n%s\nwant:\n%s", got, strings.Join(want, "\n"))
	}
}

func TestPaintNoParticles(t *testing.T) {
	ctx := &recordingContext{}
	NewRenderer(White).Paint(ctx, nil, 1)

	want := "clear alpha 1.00 alpha 1.00 present"
	if got := strings.Join(ctx.calls, " "); got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#ffffff", "#ffffff", false},
		{"#fff", "#ffffff", false},
		{"#3a7bd5", "#3a7bd5", false},
		{"white", "", true},
		{"#12345", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColor(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if c.Hex() != tt.want {
				t.Errorf("ParseColor(%q) = %s, want %s", tt.in, c.Hex(), tt.want)
			}
		})
	}
}
