package effect

import (
	"math"

	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/input"
	"github.com/san-kum/particlelab/internal/surface"
)

const (
	burstSpawn  = 80
	burstDecay  = 0.015
	burstShrink = 0.97
)

type burst struct {
	sub input.Subscription
}

func NewBurst() Effect { return &burst{} }

func (*burst) ID() ID { return ExplosionBurst }

func (b *burst) Init(env *Env) {
	b.sub = env.Input.On(input.Click, func(e input.Event) {
		r := env.Rand
		for i := 0; i < burstSpawn; i++ {
			a := angle(r)
			speed := between(r, 4, 8)
			env.Particles.Append(entity.Particle{
				X:      e.X,
				Y:      e.Y,
				VX:     math.Cos(a) * speed,
				VY:     math.Sin(a) * speed,
				Life:   1,
				Color:  surface.HSL(r.Float64()*360, 1, 0.6),
				Radius: between(r, 3, 6),
			})
		}
	})
}

func (b *burst) Update(env *Env) {
	paint := env.Surface.Paint()
	env.Particles.Filter(func(p *entity.Particle) bool {
		drift(p)
		p.Life -= burstDecay
		p.Radius *= burstShrink

		paint.Fill = p.Color
		paint.Alpha = p.Life
		paint.Blur = 10 * p.Life
		paint.Glow = p.Color
		env.Surface.FillCircle(p.X, p.Y, p.Radius)

		return p.Life > 0
	})
	paint.Alpha = 1
}

func (b *burst) Destroy(env *Env) {
	env.Input.Off(b.sub)
	b.sub = 0
}
