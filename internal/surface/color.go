package surface

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha colour with every component in [0,1].
type Color struct {
	R, G, B, A float64
}

var (
	Transparent = Color{}
	Black       = Color{A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
)

func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: clamp01(a)}
}

// Hex parses #rgb, #rrggbb and #rrggbbaa. Malformed input yields Transparent.
func Hex(s string) Color {
	alpha := 1.0
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		v, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Transparent
		}
		alpha = float64(v) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Transparent
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}
}

// HSL takes hue in degrees and saturation/lightness in [0,1].
func HSL(h, s, l float64) Color {
	c := colorful.Hsl(h, s, l).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Over composites c onto dst with the extra opacity factor alpha.
func (c Color) Over(dst Color, alpha float64) Color {
	a := clamp01(c.A * alpha)
	if a == 0 {
		return dst
	}
	mixed := dst.Colorful().BlendRgb(c.Colorful(), a).Clamped()
	return Color{R: mixed.R, G: mixed.G, B: mixed.B, A: clamp01(a + dst.A*(1-a))}
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func (c Color) Hex() string {
	return c.Colorful().Clamped().Hex()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
