package effect

import (
	"math"

	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/surface"
)

const (
	orbitCount = 80
	orbitPull  = 0.4
	orbitSpin  = 2.0
)

var orbitColor = surface.Hex("#ffff00")

type orbit struct{}

func NewOrbit() Effect { return &orbit{} }

func (*orbit) ID() ID { return GravityOrbs }

func (*orbit) Init(env *Env) {
	w, h := env.Surface.Size()
	cx, cy := w/2, h/2
	r := env.Rand
	for i := 0; i < orbitCount; i++ {
		a := angle(r)
		dist := between(r, 100, 200)
		env.Particles.Append(entity.Particle{
			X:      cx + math.Cos(a)*dist,
			Y:      cy + math.Sin(a)*dist,
			VX:     math.Sin(a) * orbitSpin,
			VY:     -math.Cos(a) * orbitSpin,
			Radius: between(r, 2, 5),
		})
	}
}

func (*orbit) Update(env *Env) {
	w, h := env.Surface.Size()
	cx, cy := w/2, h/2
	paint := env.Surface.Paint()
	env.Particles.Each(func(_ int, p *entity.Particle) {
		dx := cx - p.X
		dy := cy - p.Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dist = 1
		}
		p.VX += dx / dist * orbitPull
		p.VY += dy / dist * orbitPull
		drift(p)

		paint.Fill = orbitColor
		paint.Blur = 10
		paint.Glow = orbitColor
		env.Surface.FillCircle(p.X, p.Y, p.Radius)
	})
}
