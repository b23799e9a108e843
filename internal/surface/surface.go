package surface

// Surface is the fixed-size 2-D drawing target an effect draws into.
// Coordinates are surface-local; (0,0) is the top-left corner.
type Surface interface {
	Size() (width, height float64)
	Clear()
	Paint() *Paint
	FillCircle(x, y, radius float64)
	StrokeLine(x0, y0, x1, y1 float64)
	FillText(text string, x, y float64)
}

const DefaultFont = "10px sans-serif"

// Paint is the mutable drawing state consulted by every draw call.
type Paint struct {
	Fill      Color
	Stroke    Color
	Alpha     float64
	Blur      float64
	Glow      Color
	LineWidth float64
	Font      string
}

func DefaultPaint() Paint {
	return Paint{
		Fill:      Black,
		Stroke:    Black,
		Alpha:     1,
		Glow:      Transparent,
		LineWidth: 1,
		Font:      DefaultFont,
	}
}

// Reset restores the transient state: full opacity, no glow, unit line width.
// Fill, stroke and font are left for the next effect to set.
func (p *Paint) Reset() {
	p.Alpha = 1
	p.Blur = 0
	p.Glow = Transparent
	p.LineWidth = 1
}

// FillAlpha is the effective opacity of a fill under the current state.
func (p Paint) FillAlpha() float64 { return clamp01(p.Alpha * p.Fill.A) }

// StrokeAlpha is the effective opacity of a stroke under the current state.
func (p Paint) StrokeAlpha() float64 { return clamp01(p.Alpha * p.Stroke.A) }
