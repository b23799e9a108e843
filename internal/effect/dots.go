package effect

import (
	"cmp"
	"math"
	"slices"

	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/input"
	"github.com/san-kum/particlelab/internal/surface"
)

const (
	dotCount       = 100
	dotNeighbours  = 6
	dotLinkDist    = 120.0
	dotPointerDist = 150.0
)

var (
	dotFill    = surface.Hex("#bb00ff")
	dotLink    = surface.RGBA(0, 255, 255, 1)
	dotPointer = surface.RGBA(255, 0, 255, 1)
)

type neighbour struct {
	j    int
	dist float64
}

type dots struct {
	sub  input.Subscription
	near [][]neighbour
	cand []neighbour
}

func NewDots() Effect { return &dots{} }

func (*dots) ID() ID { return Connecting }

func (d *dots) Init(env *Env) {
	w, h := env.Surface.Size()
	r := env.Rand
	for i := 0; i < dotCount; i++ {
		env.Particles.Append(entity.Particle{
			X:      r.Float64() * w,
			Y:      r.Float64() * h,
			VX:     jitter(r, 0.8),
			VY:     jitter(r, 0.8),
			Radius: 3,
		})
	}
	d.sub = env.Input.On(input.Move, func(e input.Event) {
		env.Pointer.X, env.Pointer.Y = e.X, e.Y
	})
}

func (d *dots) Update(env *Env) {
	w, h := env.Surface.Size()
	paint := env.Surface.Paint()
	ps := env.Particles.Items()

	for i := range ps {
		p := &ps[i]
		drift(p)
		bounce(p, w, h)

		paint.Fill = dotFill
		paint.Blur = 6
		paint.Glow = dotFill
		env.Surface.FillCircle(p.X, p.Y, p.Radius)
	}

	d.nearest(ps)

	for i := range ps {
		p := &ps[i]
		for _, nb := range d.near[i] {
			if nb.dist >= dotLinkDist {
				continue
			}
			// the pair was drawn from the other end already
			if nb.j < i && d.knows(nb.j, i) {
				continue
			}
			q := &ps[nb.j]
			paint.Stroke = dotLink.WithAlpha(1 - nb.dist/dotLinkDist)
			env.Surface.StrokeLine(p.X, p.Y, q.X, q.Y)
		}

		dist := math.Hypot(p.X-env.Pointer.X, p.Y-env.Pointer.Y)
		if dist < dotPointerDist {
			paint.Stroke = dotPointer.WithAlpha(1 - dist/dotPointerDist)
			env.Surface.StrokeLine(p.X, p.Y, env.Pointer.X, env.Pointer.Y)
		}
	}
}

// nearest fills d.near[i] with up to dotNeighbours closest particles to i.
func (d *dots) nearest(ps []entity.Particle) {
	if cap(d.near) < len(ps) {
		d.near = make([][]neighbour, len(ps))
	}
	d.near = d.near[:len(ps)]

	for i := range ps {
		d.cand = d.cand[:0]
		for j := range ps {
			if j == i {
				continue
			}
			d.cand = append(d.cand, neighbour{j: j, dist: math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)})
		}
		slices.SortStableFunc(d.cand, func(a, b neighbour) int { return cmp.Compare(a.dist, b.dist) })

		k := min(dotNeighbours, len(d.cand))
		d.near[i] = append(d.near[i][:0], d.cand[:k]...)
	}
}

func (d *dots) knows(i, j int) bool {
	for _, nb := range d.near[i] {
		if nb.j == j && nb.dist < dotLinkDist {
			return true
		}
	}
	return false
}

func (d *dots) Destroy(env *Env) {
	env.Input.Off(d.sub)
	d.sub = 0
}
