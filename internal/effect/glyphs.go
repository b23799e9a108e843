package effect

import (
	"math"
	"slices"

	"github.com/san-kum/particlelab/internal/entity"
	"github.com/san-kum/particlelab/internal/surface"
)

const (
	glyphColumnWidth = 20.0
	glyphFont        = "16px monospace"
	// a column past the bottom edge restarts with this probability per frame
	glyphResetChance = 0.025
)

var (
	glyphAlphabet = []rune("01アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン")
	glyphFill     = surface.Hex("#00ff41")
)

// Glyphs returns the runes the falling-glyph effect draws, so hosts can load
// them into their fonts.
func Glyphs() []rune { return slices.Clone(glyphAlphabet) }

type glyphs struct{}

func NewGlyphs() Effect { return &glyphs{} }

func (*glyphs) ID() ID { return Matrix }

func (*glyphs) Init(env *Env) {
	w, _ := env.Surface.Size()
	columns := int(math.Floor(w / glyphColumnWidth))
	for i := 0; i < columns; i++ {
		env.Particles.Append(entity.Particle{
			X:     float64(i) * glyphColumnWidth,
			Speed: between(env.Rand, 4, 8),
		})
	}
}

func (*glyphs) Update(env *Env) {
	_, h := env.Surface.Size()
	paint := env.Surface.Paint()
	paint.Fill = glyphFill
	paint.Font = glyphFont

	env.Particles.Each(func(_ int, p *entity.Particle) {
		ch := glyphAlphabet[env.Rand.Intn(len(glyphAlphabet))]
		env.Surface.FillText(string(ch), p.X, p.Y)

		p.Y += p.Speed
		if p.Y > h && env.Rand.Float64() > 1-glyphResetChance {
			p.Y = -glyphColumnWidth
		}
	})
}
