package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/particlelab/internal/surface"
)

const svgBackground = "#0a0a0a"

// FrameToSVG renders one recorded frame. Glow becomes a CSS drop-shadow, which
// is what a canvas shadowBlur looks like in a browser.
func FrameToSVG(width, height float64, ops []surface.Op) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	for _, op := range ops {
		alpha := op.Alpha()
		if alpha <= 0 {
			continue
		}
		switch op.Kind {
		case surface.OpCircle:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"%s/>
`, op.X0, op.Y0, op.Radius, op.Paint.Fill.Hex(), alpha, glowStyle(op.Paint)))
		case surface.OpLine:
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.1f"/>
`, op.X0, op.Y0, op.X1, op.Y1, op.Paint.Stroke.Hex(), alpha, op.Paint.LineWidth))
		case surface.OpText:
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" fill-opacity="%.3f" style="font: %s">%s</text>
`, op.X0, op.Y0, op.Paint.Fill.Hex(), alpha, op.Paint.Font, html.EscapeString(op.Text)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func glowStyle(p surface.Paint) string {
	if p.Blur <= 0 || p.Glow.A <= 0 {
		return ""
	}
	n := p.Glow.NRGBA()
	return fmt.Sprintf(` style="filter: drop-shadow(0 0 %.1fpx rgba(%d,%d,%d,%.3f))"`, p.Blur/2, n.R, n.G, n.B, p.Glow.A*p.Alpha)
}

// SeriesToSVG draws values as a polyline scaled to fill width x height.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
