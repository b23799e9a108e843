package effect

import (
	"math"

	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/surface"
)

const (
	moteCount = 60
	motePhase = 0.05
)

var (
	moteFill   = surface.RGBA(255, 255, 100, 1)
	moteShadow = surface.Hex("#000000ff")
)

type motes struct{}

func NewMotes() Effect { return &motes{} }

func (*motes) ID() ID { return Fireflies }

func (*motes) Init(env *Env) {
	w, h := env.Surface.Size()
	r := env.Rand
	for i := 0; i < moteCount; i++ {
		env.Particles.Append(entity.Particle{
			X:      r.Float64() * w,
			Y:      r.Float64() * h,
			VX:     jitter(r, 0.6),
			VY:     jitter(r, 0.6),
			Phase:  angle(r),
			Radius: between(r, 2, 3),
		})
	}
}

func (*motes) Update(env *Env) {
	w, h := env.Surface.Size()
	paint := env.Surface.Paint()
	env.Particles.Each(func(_ int, p *entity.Particle) {
		drift(p)
		p.Phase += motePhase
		bounce(p, w, h)

		glow := moteGlow(p.Phase)
		paint.Fill = moteFill.WithAlpha(glow * 0.6)
		paint.Blur = 15 * glow
		paint.Glow = moteShadow
		env.Surface.FillCircle(p.X, p.Y, p.Radius*(0.5+glow))
	})
}

// moteGlow maps a phase onto [0,1].
func moteGlow(phase float64) float64 {
	return (math.Sin(phase) + 1) / 2
}
