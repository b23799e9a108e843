package effect

import (
	"math"

	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/surface"
)

const (
	waveCount = 200
	waveAmpX  = 50.0
	waveAmpY  = 30.0
	waveK     = 0.01
)

var waveColor = surface.Hex("#ff00ff")

type wave struct{}

func NewWave() Effect { return &wave{} }

func (*wave) ID() ID { return WaveField }

func (*wave) Init(env *Env) {
	w, h := env.Surface.Size()
	r := env.Rand
	for i := 0; i < waveCount; i++ {
		env.Particles.Append(entity.Particle{
			X:      r.Float64() * w,
			Y:      r.Float64() * h,
			BaseX:  r.Float64() * w,
			BaseY:  r.Float64() * h,
			Radius: 3,
		})
	}
}

func (*wave) Update(env *Env) {
	t := env.Seconds()
	paint := env.Surface.Paint()
	env.Particles.Each(func(_ int, p *entity.Particle) {
		p.X, p.Y = waveAt(t, p.BaseX, p.BaseY)

		paint.Fill = waveColor
		paint.Blur = 6
		paint.Glow = waveColor
		env.Surface.FillCircle(p.X, p.Y, p.Radius)
	})
}

// waveAt is the position of a point anchored at (bx, by) at time t.
func waveAt(t, bx, by float64) (float64, float64) {
	return bx + math.Sin(t+by*waveK)*waveAmpX, by + math.Cos(t+bx*waveK)*waveAmpY
}
