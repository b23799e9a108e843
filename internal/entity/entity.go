package entity

import "github.com/san-kum/particlelab/internal/surface"

// Particle carries the union of attributes the effects draw from.
// Each effect reads and writes only the fields its update rule needs.
type Particle struct {
	X, Y         float64
	VX, VY       float64
	Radius       float64
	Opacity      float64
	Life         float64
	Decay        float64
	Phase        float64
	BaseX, BaseY float64
	Speed        float64
	Color        surface.Color
}

// Pointer is the last known pointer position in surface-local coordinates.
type Pointer struct {
	X, Y float64
}

func (p *Pointer) Reset() { p.X, p.Y = 0, 0 }

// Container is the ordered, mutable particle collection of one active effect.
type Container struct {
	items []Particle
}

func NewContainer(capacity int) *Container {
	return &Container{items: make([]Particle, 0, capacity)}
}

func (c *Container) Len() int { return len(c.items) }

// At returns a pointer into the container; it is invalidated by Append and Filter.
func (c *Container) At(i int) *Particle { return &c.items[i] }

func (c *Container) Append(ps ...Particle) { c.items = append(c.items, ps...) }

// Items exposes the backing slice for in-place iteration.
func (c *Container) Items() []Particle { return c.items }

// Each calls fn with a pointer to every particle in order.
func (c *Container) Each(fn func(i int, p *Particle)) {
	for i := range c.items {
		fn(i, &c.items[i])
	}
}

// Filter advances every particle through keep and compacts the container down
// to those for which keep returned true, preserving order.
func (c *Container) Filter(keep func(p *Particle) bool) {
	n := 0
	for i := range c.items {
		if keep(&c.items[i]) {
			c.items[n] = c.items[i]
			n++
		}
	}
	clear(c.items[n:])
	c.items = c.items[:n]
}
