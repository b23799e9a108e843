package runtime

import (
	"errors"
	"io"
	"log"
	"math/rand"
	"reflect"
	"time"

	"github.com/san-kum/particlelab/internal/clock"
	"github.com/san-kum/particlelab/internal/effect"
	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/input"
	"github.com/san-kum/particlelab/internal/registry"
	"github.com/san-kum/particlelab/internal/surface"
)

var (
	ErrUnknownEffect = registry.ErrUnknownEffect
	ErrNoSurface     = errors.New("drawing surface unavailable")
	ErrNoClock       = errors.New("frame clock unavailable")
)

// Clock is the host's per-refresh callback subscription.
type Clock interface {
	Schedule(fn func()) clock.Handle
	Cancel(h clock.Handle) bool
}

type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

type Options struct {
	Registry *registry.Registry
	Input    *input.Source
	Rand     *rand.Rand
	Now      func() time.Time
	Logger   *log.Logger
}

// Manager owns the active effect, its particle container, the shared pointer
// state and the single frame-clock subscription.
type Manager struct {
	registry *registry.Registry
	surface  surface.Surface
	clock    Clock
	log      *log.Logger
	now      func() time.Time
	start    time.Time

	env      effect.Env
	pointer  entity.Pointer
	active   effect.Effect
	activeID effect.ID
	handle   clock.Handle
	ticks    uint64
}

func New(surf surface.Surface, clk Clock, opts Options) (*Manager, error) {
	if isNil(surf) {
		return nil, ErrNoSurface
	}
	if isNil(clk) {
		return nil, ErrNoClock
	}
	if opts.Registry == nil {
		opts.Registry = registry.New()
	}
	if opts.Input == nil {
		opts.Input = input.NewSource(input.Identity())
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	m := &Manager{
		registry: opts.Registry,
		surface:  surf,
		clock:    clk,
		log:      opts.Logger,
		now:      opts.Now,
	}
	m.start = m.now()
	m.env = effect.Env{
		Surface:   surf,
		Particles: entity.NewContainer(0),
		Pointer:   &m.pointer,
		Input:     opts.Input,
		Rand:      opts.Rand,
		Seconds:   m.seconds,
	}
	return m, nil
}

// Switch tears down the current effect, if any, and activates id. An unknown
// id fails fast with ErrUnknownEffect before anything is touched: an idle
// manager stays idle and a running effect keeps running.
func (m *Manager) Switch(id effect.ID) error {
	next, err := m.registry.Lookup(id)
	if err != nil {
		return err
	}

	m.teardown()

	m.activeID = id
	m.active = next
	next.Init(&m.env)
	m.log.Printf("switch %s: %d particles", id, m.env.Particles.Len())

	if m.handle == 0 {
		m.handle = m.clock.Schedule(m.tick)
	}
	return nil
}

// Stop returns to idle. It is safe to call in any state.
func (m *Manager) Stop() {
	if m.active != nil {
		m.log.Printf("stop %s after %d ticks", m.activeID, m.ticks)
	}
	m.teardown()
}

func (m *Manager) teardown() {
	if m.handle != 0 {
		m.clock.Cancel(m.handle)
		m.handle = 0
	}
	if d, ok := m.active.(effect.Destroyer); ok {
		d.Destroy(&m.env)
	}
	m.active = nil
	m.activeID = ""

	m.env.Particles = entity.NewContainer(0)
	m.pointer.Reset()
	m.surface.Clear()
}

func (m *Manager) tick() {
	m.handle = 0
	if m.active == nil {
		return
	}

	m.surface.Clear()
	m.surface.Paint().Reset()
	m.active.Update(&m.env)
	m.ticks++

	m.handle = m.clock.Schedule(m.tick)
}

// isNil also catches an interface holding a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func (m *Manager) seconds() float64 {
	return m.now().Sub(m.start).Seconds()
}

func (m *Manager) State() State {
	if m.active != nil {
		return Active
	}
	return Idle
}

// Active reports the identifier of the running effect.
func (m *Manager) Active() (effect.ID, bool) {
	return m.activeID, m.active != nil
}

// Particles is the live container; callers must treat it as read-only.
func (m *Manager) Particles() *entity.Container { return m.env.Particles }
func (m *Manager) Pointer() entity.Pointer      { return m.pointer }
func (m *Manager) Input() *input.Source         { return m.env.Input }
func (m *Manager) Surface() surface.Surface     { return m.surface }
func (m *Manager) Effects() []effect.ID         { return m.registry.List() }

// Subscribed reports whether a frame callback is pending.
func (m *Manager) Subscribed() bool { return m.handle != 0 }

// Ticks counts completed frames across every effect.
func (m *Manager) Ticks() uint64 { return m.ticks }
