package effect

import (
	"math"
	"math/rand"

	"github.com/san-kum/particlelab/internal/entity"
)

func drift(p *entity.Particle) {
	p.X += p.VX
	p.Y += p.VY
}

// bounce points the velocity back inside on any axis where the particle has
// left [0, extent].
func bounce(p *entity.Particle, w, h float64) {
	if p.X < 0 {
		p.VX = math.Abs(p.VX)
	} else if p.X > w {
		p.VX = -math.Abs(p.VX)
	}
	if p.Y < 0 {
		p.VY = math.Abs(p.VY)
	} else if p.Y > h {
		p.VY = -math.Abs(p.VY)
	}
}

// jitter is uniform in [-scale/2, scale/2).
func jitter(r *rand.Rand, scale float64) float64 {
	return (r.Float64() - 0.5) * scale
}

// between is uniform in [lo, lo+span).
func between(r *rand.Rand, lo, span float64) float64 {
	return r.Float64()*span + lo
}

func angle(r *rand.Rand) float64 {
	return r.Float64() * 2 * math.Pi
}
