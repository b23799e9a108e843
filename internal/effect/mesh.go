package effect

import (
	"math"

	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/input"
	"github.com/san-kum/particlelab/internal/surface"
)

const (
	meshCount     = 120
	meshRepelDist = 100.0
	meshImpulse   = 3.0
	meshDamping   = 0.98
	meshLinkDist  = 150.0
)

var meshColor = surface.Hex("#00ffff")

type mesh struct {
	sub input.Subscription
}

func NewMesh() Effect { return &mesh{} }

func (*mesh) ID() ID { return NetworkRepulse }

func (m *mesh) Init(env *Env) {
	w, h := env.Surface.Size()
	r := env.Rand
	for i := 0; i < meshCount; i++ {
		env.Particles.Append(entity.Particle{
			X:      r.Float64() * w,
			Y:      r.Float64() * h,
			VX:     jitter(r, 1),
			VY:     jitter(r, 1),
			Radius: 4,
		})
	}
	m.sub = env.Input.On(input.Move, func(e input.Event) {
		env.Pointer.X, env.Pointer.Y = e.X, e.Y
	})
}

func (m *mesh) Update(env *Env) {
	w, h := env.Surface.Size()
	paint := env.Surface.Paint()
	ps := env.Particles.Items()

	for i := range ps {
		p := &ps[i]
		repel(p, env.Pointer)
		drift(p)
		p.VX *= meshDamping
		p.VY *= meshDamping
		bounce(p, w, h)

		paint.Fill = meshColor
		paint.Blur = 8
		paint.Glow = meshColor
		env.Surface.FillCircle(p.X, p.Y, p.Radius)
	}

	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			dist := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if dist < meshLinkDist {
				paint.Stroke = meshColor.WithAlpha(1 - dist/meshLinkDist)
				env.Surface.StrokeLine(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y)
			}
		}
	}
}

// repel pushes p away from the pointer by a fixed impulse along the unit direction.
func repel(p *entity.Particle, ptr *entity.Pointer) {
	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	dist := math.Hypot(dx, dy)
	if dist < meshRepelDist && dist > 0 {
		p.VX -= dx / dist * meshImpulse
		p.VY -= dy / dist * meshImpulse
	}
}

func (m *mesh) Destroy(env *Env) {
	env.Input.Off(m.sub)
	m.sub = 0
}
