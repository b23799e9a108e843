package effect

import (
	"math"

	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/surface"
)

const (
	starCount = 150
	starPhase = 0.03
)

type stars struct{}

func NewStars() Effect { return &stars{} }

func (*stars) ID() ID { return SparkleStars }

func (*stars) Init(env *Env) {
	w, h := env.Surface.Size()
	r := env.Rand
	for i := 0; i < starCount; i++ {
		env.Particles.Append(entity.Particle{
			X:       r.Float64() * w,
			Y:       r.Float64() * h,
			Radius:  between(r, 1, 3),
			Opacity: between(r, 0.2, 0.8),
			Phase:   angle(r),
		})
	}
}

func (*stars) Update(env *Env) {
	paint := env.Surface.Paint()
	env.Particles.Each(func(_ int, p *entity.Particle) {
		p.Phase += starPhase
		p.Opacity = 0.5 + (math.Sin(p.Phase)+1)/2*0.5

		paint.Fill = surface.White.WithAlpha(p.Opacity)
		paint.Blur = 8 * p.Opacity
		paint.Glow = surface.White
		env.Surface.FillCircle(p.X, p.Y, p.Radius)
	})
}
