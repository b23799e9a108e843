package gui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particlelab/internal/surface"
)

// Window draws into a rectangle of the raylib framebuffer. Every call must
// happen between rl.BeginDrawing and rl.EndDrawing.
type Window struct {
	origin        rl.Vector2
	width, height float64
	paint         surface.Paint
	glow          rl.Texture2D
	font          rl.Font
}

func NewWindow(x, y, width, height float64, glow rl.Texture2D, font rl.Font) *Window {
	return &Window{
		origin: rl.NewVector2(float32(x), float32(y)),
		width:  width,
		height: height,
		paint:  surface.DefaultPaint(),
		glow:   glow,
		font:   font,
	}
}

func (w *Window) Size() (float64, float64) { return w.width, w.height }
func (w *Window) Paint() *surface.Paint    { return &w.paint }

func (w *Window) Clear() {
	rl.DrawRectangleV(w.origin, rl.NewVector2(float32(w.width), float32(w.height)), ColBg)
}

func (w *Window) at(x, y float64) rl.Vector2 {
	return rl.NewVector2(w.origin.X+float32(x), w.origin.Y+float32(y))
}

func (w *Window) FillCircle(x, y, radius float64) {
	alpha := w.paint.FillAlpha()
	if alpha <= 0 || radius <= 0 {
		return
	}
	if w.paint.Blur > 0 && w.paint.Glow.A > 0 {
		w.halo(x, y, radius+w.paint.Blur)
	}
	rl.DrawCircleV(w.at(x, y), float32(radius), toColor(w.paint.Fill, alpha))
}

// halo stretches the radial gradient texture over a square of half-size r.
func (w *Window) halo(x, y, r float64) {
	src := rl.NewRectangle(0, 0, float32(w.glow.Width), float32(w.glow.Height))
	c := w.at(x, y)
	dst := rl.NewRectangle(c.X-float32(r), c.Y-float32(r), float32(2*r), float32(2*r))
	tint := toColor(w.paint.Glow, min(w.paint.Alpha*w.paint.Glow.A, 1))
	rl.DrawTexturePro(w.glow, src, dst, rl.NewVector2(0, 0), 0, tint)
}

func (w *Window) StrokeLine(x0, y0, x1, y1 float64) {
	alpha := w.paint.StrokeAlpha()
	if alpha <= 0 {
		return
	}
	rl.DrawLineEx(w.at(x0, y0), w.at(x1, y1), float32(w.paint.LineWidth), toColor(w.paint.Stroke, alpha))
}

// FillText draws with the y coordinate as the baseline.
func (w *Window) FillText(text string, x, y float64) {
	alpha := w.paint.FillAlpha()
	if alpha <= 0 || text == "" {
		return
	}
	size := fontSize(w.paint.Font)
	pos := w.at(x, y)
	pos.Y -= size
	rl.DrawTextEx(w.font, text, pos, size, 1, toColor(w.paint.Fill, alpha))
}

func toColor(c surface.Color, alpha float64) rl.Color {
	n := c.NRGBA()
	return rl.NewColor(n.R, n.G, n.B, uint8(alpha*255+0.5))
}

// fontSize reads the pixel size out of a CSS font shorthand such as
// "16px monospace".
func fontSize(font string) float32 {
	for _, field := range strings.Fields(font) {
		if px, ok := strings.CutSuffix(field, "px"); ok {
			if v, err := strconv.ParseFloat(px, 32); err == nil && v > 0 {
				return float32(v)
			}
		}
	}
	return 10
}
