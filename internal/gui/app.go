package gui

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"slices"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particlelab/internal/clock"
	"github.com/san-kum/particlelab/internal/effect"
	"github.com/san-kum/particlelab/internal/export"
	"github.com/san-kum/particlelab/internal/input"
	"github.com/san-kum/particlelab/internal/runtime"
	"github.com/san-kum/particlelab/internal/snippets"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColPanel   = rl.NewColor(18, 18, 22, 255)
)

const (
	panelWidth = 280
	rowHeight  = 28
	listTop    = 110
)

type Options struct {
	Effect effect.ID
	Width  float64
	Height float64
	FPS    int
	Seed   int64
	Tab    snippets.Tab
	Logger *log.Logger
}

type App struct {
	Manager *runtime.Manager
	Frame   *clock.Frame
	Window  *Window
	Input   *input.Source
	Effects []effect.ID
	Tab     snippets.Tab
	Code    bool

	log     *log.Logger
	font    rl.Font
	glyphs  rl.Font
	glow    rl.Texture2D
	copyBtn export.Button
	cursor  int
	mouse   rl.Vector2
	quit    bool
	screenW int32
	screenH int32
}

// initWindow opens a window wide enough for the control panel plus the
// surface and caps the loop at fps.
func initWindow(width, height float64, fps int) {
	rl.InitWindow(int32(panelWidth+width), int32(height), "particlelab")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

const uiFont = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

// glyphFonts are tried in order for the surface font; the first one present
// must cover katakana.
var glyphFonts = []string{
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/opentype/ipafont-gothic/ipag.ttf",
	"/usr/share/fonts/truetype/fonts-japanese-gothic.ttf",
	"/usr/share/fonts/google-droid-sans-fonts/DroidSansFallbackFull.ttf",
}

// fontCodepoints is printable ASCII plus every glyph the effects draw.
func fontCodepoints() []rune {
	runes := effect.Glyphs()
	for r := rune(32); r < 127; r++ {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return slices.Compact(runes)
}

func loadFont(path string, codepoints []rune) rl.Font {
	font := rl.LoadFontEx(path, 32, codepoints, int32(len(codepoints)))
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// loadGlyphFont falls back to the panel font, which draws katakana as
// placeholders, when no glyph font is installed.
func loadGlyphFont(logger *log.Logger) rl.Font {
	for _, path := range glyphFonts {
		if _, err := os.Stat(path); err == nil {
			return loadFont(path, fontCodepoints())
		}
	}
	logger.Printf("no katakana font found, tried %s", strings.Join(glyphFonts, ", "))
	return loadFont(uiFont, fontCodepoints())
}

func NewApp(opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if !opts.Tab.Valid() {
		opts.Tab = snippets.JS
	}

	a := &App{
		Frame:   clock.NewFrame(),
		Input:   input.NewSource(input.Transform{OffsetX: panelWidth, ScaleX: 1, ScaleY: 1}),
		Effects: effect.IDs(),
		Tab:     opts.Tab,
		log:     opts.Logger,
		font:    loadFont(uiFont, nil),
		glyphs:  loadGlyphFont(opts.Logger),
		screenW: int32(panelWidth + opts.Width),
		screenH: int32(opts.Height),
	}

	// Generate Glow Texture
	img := rl.GenImageGradientRadial(32, 32, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	a.glow = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	a.Window = NewWindow(panelWidth, 0, opts.Width, opts.Height, a.glow, a.glyphs)

	mgr, err := runtime.New(a.Window, a.Frame, runtime.Options{
		Input:  a.Input,
		Rand:   rand.New(rand.NewSource(opts.Seed)),
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	a.Manager = mgr

	if err := a.Manager.Switch(opts.Effect); err != nil {
		return nil, err
	}
	a.cursor = slices.Index(a.Effects, opts.Effect)
	return a, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	initWindow(opts.Width, opts.Height, opts.FPS)
	defer rl.CloseWindow()

	a, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	a.Manager.Stop()
	rl.UnloadTexture(a.glow)
	rl.UnloadFont(a.font)
	rl.UnloadFont(a.glyphs)
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.selectEffect(a.cursor + 1)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.selectEffect(a.cursor - 1)
	}
	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive,
		rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine, rl.KeyZero} {
		if rl.IsKeyPressed(key) {
			a.selectEffect(i)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.selectEffect(a.cursor)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.cycleTab()
	}
	if rl.IsKeyPressed(rl.KeyV) || rl.IsKeyPressed(rl.KeyEnter) {
		a.Code = !a.Code
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.copyEffect()
	}

	a.pointer()
}

// pointer forwards mouse motion and clicks over the surface. Clicks on the
// panel drive the effect list and the copy button instead.
func (a *App) pointer() {
	pos := rl.GetMousePosition()
	onPanel := pos.X < panelWidth

	if !onPanel && !a.Code && pos != a.mouse {
		a.Input.Emit(input.Raw{Kind: input.Move, X: float64(pos.X), Y: float64(pos.Y)})
	}
	a.mouse = pos

	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	switch {
	case onPanel:
		if i, ok := rowAt(pos.Y, len(a.Effects)); ok {
			a.selectEffect(i)
		} else if rl.CheckCollisionPointRec(pos, copyRect(a.screenH)) {
			a.copyEffect()
		}
	case !a.Code:
		a.Input.Emit(input.Raw{Kind: input.Click, X: float64(pos.X), Y: float64(pos.Y)})
	}
}

func rowAt(y float32, n int) (int, bool) {
	if y < listTop {
		return 0, false
	}
	i := int((y - listTop) / rowHeight)
	return i, i < n
}

func copyRect(screenH int32) rl.Rectangle {
	return rl.NewRectangle(30, float32(screenH-90), panelWidth-60, 36)
}

func (a *App) selectEffect(i int) {
	if i < 0 || i >= len(a.Effects) {
		return
	}
	if err := a.Manager.Switch(a.Effects[i]); err != nil {
		a.log.Printf("switch: %v", err)
		return
	}
	a.cursor = i
}

func (a *App) cycleTab() {
	tabs := snippets.Tabs()
	a.Tab = tabs[(slices.Index(tabs, a.Tab)+1)%len(tabs)]
}

func (a *App) copyEffect() {
	id, ok := a.Manager.Active()
	if !ok {
		return
	}
	s, ok := snippets.Lookup(id)
	if !ok {
		err := fmt.Errorf("%w: %s", export.ErrNoSnippet, id)
		a.log.Printf("copy: %v", err)
		a.copyBtn.Record(err, time.Now())
		return
	}
	rl.SetClipboardText(s.Bundle())
	a.copyBtn.Record(nil, time.Now())
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	// the manager's frame callback clears and repaints the surface area
	a.Frame.Fire()
	if a.Code {
		a.drawCode()
	}
	a.drawPanel()

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawPanel() {
	rl.DrawRectangle(0, 0, panelWidth, a.screenH, ColPanel)
	a.drawText("particlelab", 30, 30, 28, ColSelect)
	a.drawText(fmt.Sprintf("%d particles  %d FPS", a.Manager.Particles().Len(), rl.GetFPS()), 30, 70, 14, ColTextDim)

	y := listTop
	for i, id := range a.Effects {
		key := (i + 1) % 10
		if i == a.cursor {
			a.drawText(fmt.Sprintf("> %d %s", key, id.Title()), 30, y+4, 18, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %d %s", key, id.Title()), 30, y+4, 18, ColText)
		}
		y += rowHeight
	}
	if a.cursor >= 0 {
		a.drawText(a.Effects[a.cursor].Description(), 30, y+16, 14, ColTextDim)
	}

	x := 30
	for _, t := range snippets.Tabs() {
		col := ColTextDim
		if t == a.Tab {
			col = ColAccent
		}
		a.drawText(strings.ToUpper(string(t)), x, int(a.screenH)-130, 16, col)
		x += 60
	}

	r := copyRect(a.screenH)
	label := a.copyBtn.Label(time.Now())
	col := ColAccent
	switch label {
	case export.LabelCopied:
		col = rl.Green
	case export.LabelFailed:
		col = rl.Red
	}
	rl.DrawRectangleLinesEx(r, 1, col)
	a.drawText(label, int(r.X)+12, int(r.Y)+9, 18, col)

	a.drawText("[1-0] EFFECT  [TAB] CODE  [V] VIEW  [Q] QUIT", 30, int(a.screenH)-36, 12, ColTextDim)
}

// drawCode overlays the active tab of the reference snippet on the surface.
func (a *App) drawCode() {
	id, _ := a.Manager.Active()
	s, ok := snippets.Lookup(id)
	if !ok {
		return
	}
	rl.DrawRectangle(panelWidth, 0, a.screenW-panelWidth, a.screenH, rl.NewColor(0, 0, 0, 200))

	y := 20
	for _, line := range strings.Split(s.Tab(a.Tab), "\n") {
		if y > int(a.screenH)-20 {
			break
		}
		a.drawText(strings.ReplaceAll(line, "\t", "  "), panelWidth+20, y, 14, ColText)
		y += 18
	}
}
