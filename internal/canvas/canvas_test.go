package canvas

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlelab/internal/surface"
)

var _ surface.Surface = (*Canvas)(nil)

func TestFillCircleLightsCentre(t *testing.T) {
	c := New(10, 5, 100, 100)
	c.Paint().Fill = surface.White
	c.FillCircle(50, 50, 5)

	// (50,50) maps to dot (10,10): cell (5,2)
	if c.grid[2][5] == blank {
		t.Error("expected the centre cell to be lit")
	}
	if c.colors[2][5] == surface.Black {
		t.Error("expected the centre cell to take the fill colour")
	}
	if c.grid[0][0] != blank {
		t.Error("expected the corner to stay blank")
	}
}

func TestFillCircleSkipsInvisible(t *testing.T) {
	c := New(10, 5, 100, 100)
	c.Paint().Fill = surface.White
	c.Paint().Alpha = 0
	c.FillCircle(50, 50, 5)
	if strings.TrimSpace(c.String()) != "" {
		t.Errorf("expected nothing drawn at zero alpha, got %q", c.String())
	}
}

func TestStrokeLine(t *testing.T) {
	c := New(10, 2, 20, 8)
	c.Paint().Stroke = surface.White
	c.StrokeLine(0, 0, 19.9, 0)

	for col := 0; col < 10; col++ {
		if c.grid[0][col] == blank {
			t.Errorf("expected column %d lit", col)
		}
	}
	if c.grid[1][0] != blank {
		t.Error("expected second row untouched")
	}
}

func TestFillText(t *testing.T) {
	c := New(10, 5, 100, 50)
	c.Paint().Fill = surface.Hex("#00ff41")
	c.FillText("ア", 20, 10)
	c.FillText("x", -5, 10)
	c.FillText("y", 500, 10)

	if c.text[1][2] != 'ア' {
		t.Errorf("expected glyph in cell (2,1), got %q", c.text[1][2])
	}
	if !strings.Contains(c.String(), "ア") {
		t.Error("expected glyph in output")
	}
	if !strings.Contains(c.Render(), "ア") {
		t.Error("expected glyph in rendered output")
	}
}

func TestClearAndResize(t *testing.T) {
	c := New(4, 4, 40, 40)
	c.Paint().Fill = surface.White
	c.FillCircle(20, 20, 10)
	c.Clear()
	if strings.TrimSpace(c.String()) != "" {
		t.Error("expected empty canvas after clear")
	}

	c.Resize(8, 2)
	if c.Cols != 8 || c.Rows != 2 {
		t.Errorf("expected 8x2, got %dx%d", c.Cols, c.Rows)
	}
	w, h := c.Size()
	if w != 40 || h != 40 {
		t.Errorf("logical size changed to %vx%v", w, h)
	}
	cw, ch := c.CellSize()
	if cw != 5 || ch != 20 {
		t.Errorf("expected cell size 5x20, got %vx%v", cw, ch)
	}
	if lines := strings.Count(c.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 rows, got %d", lines)
	}
}

func TestOutOfBoundsIgnored(t *testing.T) {
	c := New(4, 4, 40, 40)
	c.Paint().Fill = surface.White
	c.Paint().Stroke = surface.White
	c.FillCircle(-100, -100, 3)
	c.FillCircle(400, 400, 3)
	c.StrokeLine(-50, -50, -10, -10)
	if strings.TrimSpace(c.String()) != "" {
		t.Error("expected off-canvas draws to be dropped")
	}
}

func TestWideGlyphsKeepRowWidth(t *testing.T) {
	tests := []struct {
		name string
		step float64
	}{
		{"one per column pair", 20},
		{"overlapping", 10},
		{"offset", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(10, 5, 100, 50)
			c.Paint().Fill = surface.Hex("#00ff41")
			c.Paint().Stroke = surface.White
			c.StrokeLine(0, 25, 99, 25)
			for x := 0.0; x < 100; x += tt.step {
				c.FillText("ア", x, 5)
				c.FillText("カ", x, 25)
			}
			c.FillText("1", 30, 5)

			for i, line := range strings.Split(c.Render(), "\n") {
				if w := lipgloss.Width(line); w != c.Cols {
					t.Errorf("row %d renders %d columns wide, canvas has %d", i, w, c.Cols)
				}
			}
			for i, line := range strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n") {
				if w := lipgloss.Width(line); w != c.Cols {
					t.Errorf("plain row %d is %d columns wide, canvas has %d", i, w, c.Cols)
				}
			}
		})
	}
}

func TestWideGlyphAtRightEdge(t *testing.T) {
	c := New(10, 5, 100, 50)
	c.Paint().Fill = surface.White
	c.FillText("ア", 95, 5)
	if c.text[0][8] != 'ア' {
		t.Errorf("expected glyph moved into cell 8, got %q", c.text[0][8])
	}
	if c.cell(0, 9) != 0 {
		t.Error("expected the last cell to be covered by the glyph")
	}

	narrow := New(1, 1, 10, 10)
	narrow.Paint().Fill = surface.White
	narrow.FillText("ア", 0, 0)
	if got := narrow.String(); got != " \n" {
		t.Errorf("expected a single-column canvas to drop the glyph, got %q", got)
	}
}

func TestNarrowGlyphReplacesWideHalf(t *testing.T) {
	c := New(10, 5, 100, 50)
	c.Paint().Fill = surface.White
	c.FillText("ア", 20, 5)
	c.FillText("x", 30, 5)

	if c.text[0][2] != 0 {
		t.Errorf("expected the wide glyph dropped, got %q", c.text[0][2])
	}
	if !strings.HasPrefix(c.String(), "   x      \n") {
		t.Errorf("unexpected first row %q", strings.SplitN(c.String(), "\n", 2)[0])
	}
}
