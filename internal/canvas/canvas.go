package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/san-kum/particlelab/internal/surface"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// wideTail marks the cell covered by the right half of a double-width glyph.
const wideTail = rune(-1)

// glowStrength is the opacity a glow halo tints neighbouring cells with.
const glowStrength = 0.25

// Canvas is a terminal raster of braille cells. It implements surface.Surface
// over a fixed logical extent that is scaled onto Cols*2 x Rows*4 dots.
type Canvas struct {
	Cols, Rows    int
	width, height float64
	grid          [][]rune
	text          [][]rune
	colors        [][]surface.Color
	paint         surface.Paint
}

func New(cols, rows int, width, height float64) *Canvas {
	c := &Canvas{width: width, height: height, paint: surface.DefaultPaint()}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell grid; the logical extent stays fixed.
func (c *Canvas) Resize(cols, rows int) {
	c.Cols, c.Rows = max(cols, 1), max(rows, 1)
	c.grid = make([][]rune, c.Rows)
	c.text = make([][]rune, c.Rows)
	c.colors = make([][]surface.Color, c.Rows)
	for i := range c.grid {
		c.grid[i] = make([]rune, c.Cols)
		c.text[i] = make([]rune, c.Cols)
		c.colors[i] = make([]surface.Color, c.Cols)
	}
	c.Clear()
}

func (c *Canvas) Size() (float64, float64) { return c.width, c.height }
func (c *Canvas) Paint() *surface.Paint    { return &c.paint }

// CellSize is the logical extent covered by one terminal cell.
func (c *Canvas) CellSize() (float64, float64) {
	return c.width / float64(c.Cols), c.height / float64(c.Rows)
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = blank
			c.text[i][j] = 0
			c.colors[i][j] = surface.Black
		}
	}
}

// dot converts logical coordinates into dot coordinates.
func (c *Canvas) dot(x, y float64) (float64, float64) {
	return x * float64(c.Cols*2) / c.width, y * float64(c.Rows*4) / c.height
}

func (c *Canvas) set(x, y int, col surface.Color, alpha float64) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Cols || cy >= c.Rows {
		return
	}
	c.grid[cy][cx] |= pixelMap[y%4][x%2]
	c.colors[cy][cx] = col.Over(c.colors[cy][cx], alpha)
}

func (c *Canvas) tint(cx, cy int, col surface.Color, alpha float64) {
	if cx < 0 || cy < 0 || cx >= c.Cols || cy >= c.Rows {
		return
	}
	c.colors[cy][cx] = col.Over(c.colors[cy][cx], alpha)
}

func (c *Canvas) FillCircle(x, y, radius float64) {
	alpha := c.paint.FillAlpha()
	if alpha <= 0 || radius <= 0 {
		return
	}
	cx, cy := c.dot(x, y)
	rx, ry := c.dot(radius, radius)

	if c.paint.Blur > 0 && c.paint.Glow.A > 0 {
		gx, gy := c.dot(radius+c.paint.Blur, radius+c.paint.Blur)
		for row := int((cy - gy) / 4); row <= int((cy+gy)/4); row++ {
			for col := int((cx - gx) / 2); col <= int((cx+gx)/2); col++ {
				c.tint(col, row, c.paint.Glow, c.paint.Alpha*glowStrength)
			}
		}
	}

	c.set(int(cx), int(cy), c.paint.Fill, alpha)
	for dy := int(math.Floor(cy - ry)); dy <= int(math.Ceil(cy+ry)); dy++ {
		for dx := int(math.Floor(cx - rx)); dx <= int(math.Ceil(cx+rx)); dx++ {
			nx := (float64(dx) - cx) / rx
			ny := (float64(dy) - cy) / ry
			if nx*nx+ny*ny <= 1 {
				c.set(dx, dy, c.paint.Fill, alpha)
			}
		}
	}
}

// StrokeLine draws a line using Bresenham's algorithm
func (c *Canvas) StrokeLine(x0, y0, x1, y1 float64) {
	alpha := c.paint.StrokeAlpha()
	if alpha <= 0 {
		return
	}
	fx0, fy0 := c.dot(x0, y0)
	fx1, fy1 := c.dot(x1, y1)
	ax, ay := int(fx0), int(fy0)
	bx, by := int(fx1), int(fy1)

	dx := absInt(bx - ax)
	dy := absInt(by - ay)
	sx := -1
	if ax < bx {
		sx = 1
	}
	sy := -1
	if ay < by {
		sy = 1
	}
	err := dx - dy

	for {
		c.set(ax, ay, c.paint.Stroke, alpha)
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

// FillText places the first rune of text in the cell containing (x, y).
// Double-width runes also take the cell to the right, or the one to the left
// at the right edge.
func (c *Canvas) FillText(text string, x, y float64) {
	alpha := c.paint.FillAlpha()
	if alpha <= 0 || text == "" {
		return
	}
	dx, dy := c.dot(x, y)
	if dx < 0 || dy < 0 {
		return
	}
	cx, cy := int(dx)/2, int(dy)/4
	if cx >= c.Cols || cy >= c.Rows {
		return
	}

	r := []rune(text)[0]
	wide := runewidth.RuneWidth(r) == 2
	if wide {
		if c.Cols < 2 {
			return
		}
		cx = min(cx, c.Cols-2)
	}

	c.release(cy, cx)
	if wide {
		c.release(cy, cx+1)
		c.text[cy][cx+1] = wideTail
	}
	c.text[cy][cx] = r
	c.colors[cy][cx] = c.paint.Fill.Over(c.colors[cy][cx], alpha)
}

// release drops any double-width glyph overlapping the cell.
func (c *Canvas) release(row, col int) {
	switch {
	case c.text[row][col] == wideTail:
		c.text[row][col-1] = 0
	case col+1 < c.Cols && c.text[row][col+1] == wideTail:
		c.text[row][col+1] = 0
	}
	c.text[row][col] = 0
}

// cell returns the rune shown at (row, col), or 0 when the cell is covered by
// a double-width glyph to its left.
func (c *Canvas) cell(row, col int) rune {
	r := c.text[row][col]
	if r == wideTail {
		return 0
	}
	if r != 0 {
		return r
	}
	if c.grid[row][col] == blank {
		return ' '
	}
	return c.grid[row][col]
}

// String renders the raster without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.grid {
		for col := range c.grid[row] {
			if r := c.cell(row, col); r != 0 {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render renders the raster with one lipgloss style per run of equal colour.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := range c.grid {
		var run strings.Builder
		runHex := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runHex)).Render(run.String()))
			run.Reset()
		}
		for col := range c.grid[row] {
			r := c.cell(row, col)
			if r == 0 {
				continue
			}
			hex := c.colors[row][col].Hex()
			if hex != runHex {
				flush()
				runHex = hex
			}
			run.WriteRune(r)
		}
		flush()
		if row < len(c.grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
