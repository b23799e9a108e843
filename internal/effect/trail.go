package effect

import (
	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/input"
	"github.com/san-kum/particlelab/internal/surface"
)

const trailSpawn = 6

type trail struct {
	sub input.Subscription
}

func NewTrail() Effect { return &trail{} }

func (*trail) ID() ID { return MouseTrail }

func (t *trail) Init(env *Env) {
	t.sub = env.Input.On(input.Move, func(e input.Event) {
		r := env.Rand
		for i := 0; i < trailSpawn; i++ {
			env.Particles.Append(entity.Particle{
				X:      e.X,
				Y:      e.Y,
				VX:     jitter(r, 4),
				VY:     jitter(r, 4),
				Life:   1,
				Decay:  between(r, 0.01, 0.02),
				Radius: between(r, 4, 8),
				Color:  surface.HSL(between(r, 180, 60), 1, 0.6),
			})
		}
	})
}

func (t *trail) Update(env *Env) {
	paint := env.Surface.Paint()
	env.Particles.Filter(func(p *entity.Particle) bool {
		drift(p)
		p.Life -= p.Decay
		p.Radius *= 0.96

		paint.Fill = p.Color
		paint.Alpha = p.Life
		paint.Blur = 12
		paint.Glow = p.Color
		env.Surface.FillCircle(p.X, p.Y, p.Radius)

		return p.Life > 0
	})
	paint.Alpha = 1
}

func (t *trail) Destroy(env *Env) {
	env.Input.Off(t.sub)
	t.sub = 0
}
