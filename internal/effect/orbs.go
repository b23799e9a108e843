package effect

import (
	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/surface"
)

const orbCount = 80

var (
	orbFill   = surface.RGBA(0, 245, 255, 1)
	orbShadow = surface.Hex("#000000ff")
)

type orbs struct{}

func NewOrbs() Effect { return &orbs{} }

func (*orbs) ID() ID { return Floating }

func (*orbs) Init(env *Env) {
	w, h := env.Surface.Size()
	r := env.Rand
	for i := 0; i < orbCount; i++ {
		env.Particles.Append(entity.Particle{
			X:       r.Float64() * w,
			Y:       r.Float64() * h,
			VX:      jitter(r, 0.5),
			VY:      jitter(r, 0.5),
			Radius:  between(r, 2, 4),
			Opacity: between(r, 0.4, 0.4),
		})
	}
}

func (*orbs) Update(env *Env) {
	w, h := env.Surface.Size()
	paint := env.Surface.Paint()
	env.Particles.Each(func(_ int, p *entity.Particle) {
		drift(p)
		bounce(p, w, h)

		paint.Fill = orbFill.WithAlpha(p.Opacity)
		paint.Blur = 6
		paint.Glow = orbShadow
		env.Surface.FillCircle(p.X, p.Y, p.Radius)
	})
}
