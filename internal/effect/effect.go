package effect

import (
	"math"
	"math/rand"

	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/input"
	"github.com/san-kum/particlelab/internal/surface"
)

type ID string

const (
	Floating       ID = "floating"
	Connecting     ID = "connecting"
	MouseTrail     ID = "mouseTrail"
	Matrix         ID = "matrix"
	Fireflies      ID = "fireflies"
	NetworkRepulse ID = "networkRepulse"
	WaveField      ID = "waveField"
	ExplosionBurst ID = "explosionBurst"
	GravityOrbs    ID = "gravityOrbs"
	SparkleStars   ID = "sparkleStars"
)

var ids = []ID{
	Floating, Connecting, MouseTrail, Matrix, Fireflies,
	NetworkRepulse, WaveField, ExplosionBurst, GravityOrbs, SparkleStars,
}

var titles = map[ID]string{
	Floating:       "Floating Orbs",
	Connecting:     "Connecting Dots",
	MouseTrail:     "Mouse Trail",
	Matrix:         "Matrix Rain",
	Fireflies:      "Fireflies",
	NetworkRepulse: "Network Repulse",
	WaveField:      "Wave Field",
	ExplosionBurst: "Explosion Burst",
	GravityOrbs:    "Gravity Orbs",
	SparkleStars:   "Sparkle Stars",
}

var descriptions = map[ID]string{
	Floating:       "drifting orbs bouncing off the edges",
	Connecting:     "nearest-neighbour links that follow the pointer",
	MouseTrail:     "fading sparks spawned by pointer motion",
	Matrix:         "falling glyph columns",
	Fireflies:      "pulsing glow motes",
	NetworkRepulse: "pointer-repelled mesh",
	WaveField:      "points riding a time-driven wave",
	ExplosionBurst: "radial bursts on click",
	GravityOrbs:    "bodies orbiting the centre",
	SparkleStars:   "static twinkling stars",
}

// IDs lists every effect in selector order.
func IDs() []ID {
	out := make([]ID, len(ids))
	copy(out, ids)
	return out
}

func (id ID) Valid() bool {
	_, ok := titles[id]
	return ok
}

func (id ID) Title() string       { return titles[id] }
func (id ID) Description() string { return descriptions[id] }

// Env is everything an effect may touch. The runtime manager owns every
// field and passes the same Env to Init, Update and Destroy.
type Env struct {
	Surface   surface.Surface
	Particles *entity.Container
	Pointer   *entity.Pointer
	Input     *input.Source
	Rand      *rand.Rand
	// Seconds reads a monotonic clock for effects whose motion is a function of time.
	Seconds func() float64
}

// Effect is one self-contained simulation.
//
// Init is always called on an empty container and may register pointer
// handlers on Env.Input. Update advances every particle by one step and draws
// the frame; it may assume default transient paint state on entry.
type Effect interface {
	ID() ID
	Init(env *Env)
	Update(env *Env)
}

// Destroyer is implemented by effects that registered handlers in Init.
// Destroy removes exactly those handlers.
type Destroyer interface {
	Destroy(env *Env)
}

// Population is the particle count right after Init on a surface of the given width.
func Population(id ID, width float64) int {
	switch id {
	case Floating:
		return orbCount
	case Connecting:
		return dotCount
	case Matrix:
		return int(math.Floor(width / glyphColumnWidth))
	case Fireflies:
		return moteCount
	case NetworkRepulse:
		return meshCount
	case WaveField:
		return waveCount
	case GravityOrbs:
		return orbitCount
	case SparkleStars:
		return starCount
	}
	return 0
}

// New builds a fresh instance of the effect.
func New(id ID) (Effect, bool) {
	switch id {
	case Floating:
		return NewOrbs(), true
	case Connecting:
		return NewDots(), true
	case MouseTrail:
		return NewTrail(), true
	case Matrix:
		return NewGlyphs(), true
	case Fireflies:
		return NewMotes(), true
	case NetworkRepulse:
		return NewMesh(), true
	case WaveField:
		return NewWave(), true
	case ExplosionBurst:
		return NewBurst(), true
	case GravityOrbs:
		return NewOrbit(), true
	case SparkleStars:
		return NewStars(), true
	}
	return nil, false
}
