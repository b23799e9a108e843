package tui

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlelab/internal/canvas"
	"github.com/san-kum/particlelab/internal/clock"
	"github.com/san-kum/particlelab/internal/effect"
	"github.com/san-kum/particlelab/internal/export"
	"github.com/san-kum/particlelab/internal/input"
	"github.com/san-kum/particlelab/internal/runtime"
	"github.com/san-kum/particlelab/internal/snippets"
)

const (
	sidebarWidth = 30
	headerRows   = 2
	footerRows   = 2
)

type Options struct {
	Effect    effect.ID
	Width     float64
	Height    float64
	FPS       int
	Seed      int64
	Tab       snippets.Tab
	Clipboard *export.Clipboard
	Logger    *log.Logger
	Now       func() time.Time
}

var errNoClipboard = errors.New("no clipboard configured")

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	manager *runtime.Manager
	frame   *clock.Frame
	canvas  *canvas.Canvas
	input   *input.Source
	clip    *export.Clipboard
	log     *log.Logger
	now     func() time.Time

	effects  []effect.ID
	cursor   int
	tab      snippets.Tab
	code     bool
	copyBtn  export.Button
	status   string
	interval time.Duration

	lastFrame time.Time
	fps       float64

	width  int
	height int
}

func New(opts Options) (model, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if !opts.Tab.Valid() {
		opts.Tab = snippets.JS
	}

	m := model{
		frame:    clock.NewFrame(),
		input:    input.NewSource(input.Identity()),
		clip:     opts.Clipboard,
		log:      opts.Logger,
		now:      opts.Now,
		effects:  effect.IDs(),
		tab:      opts.Tab,
		interval: clock.Interval(opts.FPS),
		width:    80,
		height:   24,
	}
	m.canvas = canvas.New(m.canvasCols(), m.canvasRows(), opts.Width, opts.Height)
	m.remap()

	mgr, err := runtime.New(m.canvas, m.frame, runtime.Options{
		Input:  m.input,
		Rand:   rand.New(rand.NewSource(opts.Seed)),
		Now:    opts.Now,
		Logger: opts.Logger,
	})
	if err != nil {
		return m, err
	}
	m.manager = mgr

	if err := m.manager.Switch(opts.Effect); err != nil {
		return m, err
	}
	m.cursor = slices.Index(m.effects, opts.Effect)
	return m, nil
}

func (m model) canvasCols() int { return max(m.width-sidebarWidth, 1) }
func (m model) canvasRows() int { return max(m.height-headerRows-footerRows, 1) }

func (m model) overCanvas(x, y int) bool {
	return x >= sidebarWidth && x < sidebarWidth+m.canvas.Cols &&
		y >= headerRows && y < headerRows+m.canvas.Rows
}

// remap points pointer events at the canvas cell grid: one cell maps onto
// CellSize logical pixels, sampled at the cell centre.
func (m model) remap() {
	cw, ch := m.canvas.CellSize()
	m.input.SetTransform(input.Transform{
		OffsetX: sidebarWidth,
		OffsetY: headerRows,
		ScaleX:  cw,
		ScaleY:  ch,
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("particlelab"), tick(m.interval))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas.Resize(m.canvasCols(), m.canvasRows())
		m.remap()
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 1.0 / dt
			}
		}
		m.lastFrame = now
		m.frame.Fire()
		return m, tick(m.interval)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		m.manager.Stop()
		return m, tea.Quit
	case "up", "k":
		m.selectEffect(m.cursor - 1)
	case "down", "j":
		m.selectEffect(m.cursor + 1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		i := int(key[0] - '1')
		if key == "0" {
			i = 9
		}
		m.selectEffect(i)
	case "r":
		m.selectEffect(m.cursor)
	case "tab", "right", "l":
		m.cycleTab(1)
	case "shift+tab", "left", "h":
		m.cycleTab(-1)
	case "enter", "v":
		m.code = !m.code
	case "c":
		m.copyEffect()
	}
	return m, nil
}

func (m *model) selectEffect(i int) {
	if i < 0 || i >= len(m.effects) {
		return
	}
	if err := m.manager.Switch(m.effects[i]); err != nil {
		m.status = err.Error()
		return
	}
	m.cursor = i
	m.status = ""
}

func (m *model) cycleTab(dir int) {
	tabs := snippets.Tabs()
	i := slices.Index(tabs, m.tab) + dir
	m.tab = tabs[(i+len(tabs))%len(tabs)]
}

func (m *model) copyEffect() {
	id, ok := m.manager.Active()
	if !ok {
		return
	}
	var err error
	if m.clip == nil {
		err = errNoClipboard
	} else {
		err = m.clip.CopyEffect(id)
	}
	if err != nil {
		m.log.Printf("copy %s: %v", id, err)
	}
	m.copyBtn.Record(err, m.now())
}

// handleMouse forwards pointer events over the canvas; the sidebar, header and
// footer are not part of the surface.
func (m model) handleMouse(msg tea.MouseMsg) {
	if m.code || !m.overCanvas(msg.X, msg.Y) {
		return
	}
	x, y := float64(msg.X)+0.5, float64(msg.Y)+0.5
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.input.Emit(input.Raw{Kind: input.Move, X: x, Y: y})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.input.Emit(input.Raw{Kind: input.Move, X: x, Y: y})
		m.input.Emit(input.Raw{Kind: input.Click, X: x, Y: y})
	}
}

func (m model) View() string {
	var b strings.Builder

	id, _ := m.manager.Active()
	b.WriteString(fmt.Sprintf(" %s  %s %s  %s  %s\n",
		cyan.Render("particlelab"),
		green.Render("●"),
		white.Render(id.Title()),
		dim.Render(fmt.Sprintf("%d particles", m.manager.Particles().Len())),
		dim.Render(fmt.Sprintf("%.0ffps", m.fps))))
	b.WriteString(separator(m.width) + "\n")

	body := m.canvas.Render()
	if m.code {
		body = m.viewCode()
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), body))
	b.WriteString("\n\n")

	hint := " ↑↓/1-0 effect   tab code tab   enter code   c copy   r restart   q quit"
	if m.status != "" {
		hint = " " + red.Render(m.status)
	}
	b.WriteString(dim.Render(hint))
	return b.String()
}

func (m model) viewSidebar() string {
	var b strings.Builder
	for i, id := range m.effects {
		key := fmt.Sprintf("%d", (i+1)%10)
		if i == m.cursor {
			b.WriteString(cyan.Render("▸ ") + white.Render(fmt.Sprintf("%s %s", key, id.Title())) + "\n")
		} else {
			b.WriteString("  " + dim.Render(fmt.Sprintf("%s %s", key, id.Title())) + "\n")
		}
	}

	if m.cursor >= 0 {
		b.WriteString("\n" + dimmer.Render(m.effects[m.cursor].Description()) + "\n")
	}

	b.WriteString("\n")
	for _, t := range snippets.Tabs() {
		if t == m.tab {
			b.WriteString(neon.Render(" "+string(t)+" ") + " ")
		} else {
			b.WriteString(dim.Render(" "+string(t)+" ") + " ")
		}
	}
	b.WriteString("\n")

	label := m.copyBtn.Label(m.now())
	style := magenta
	switch label {
	case export.LabelCopied:
		style = green
	case export.LabelFailed:
		style = red
	}
	b.WriteString(button.Render(style.Render(label)))

	return sidebar.Render(b.String())
}

// viewCode shows the active tab of the reference snippet, clipped to the
// canvas area.
func (m model) viewCode() string {
	id, _ := m.manager.Active()
	s, ok := snippets.Lookup(id)
	if !ok {
		return dim.Render("no snippet")
	}
	cols, rows := m.canvasCols(), m.canvasRows()
	lines := strings.Split(s.Tab(m.tab), "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for i, line := range lines {
		line = strings.ReplaceAll(line, "\t", "  ")
		if r := []rune(line); len(r) > cols {
			line = string(r[:cols])
		}
		lines[i] = dim.Render(line)
	}
	return strings.Join(lines, "\n")
}

func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.manager.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
