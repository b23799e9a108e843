package registry

import (
	"errors"
	"fmt"

	"github.com/san-kum/particlelab/internal/effect"
)

var ErrUnknownEffect = errors.New("unknown effect")

type Factory func() effect.Effect

// Registry maps effect identifiers to factories. It is filled once by New
// and never modified afterwards.
type Registry struct {
	factories map[effect.ID]Factory
	order     []effect.ID
}

func New() *Registry {
	r := &Registry{factories: make(map[effect.ID]Factory)}

	for _, id := range effect.IDs() {
		id := id
		if _, ok := effect.New(id); !ok {
			panic("registry: no constructor for " + string(id))
		}
		r.add(id, func() effect.Effect {
			e, _ := effect.New(id)
			return e
		})
	}

	return r
}

func (r *Registry) add(id effect.ID, f Factory) {
	if _, dup := r.factories[id]; dup {
		panic("registry: duplicate effect " + string(id))
	}
	r.factories[id] = f
	r.order = append(r.order, id)
}

// Lookup builds a fresh instance of the effect registered under id.
func (r *Registry) Lookup(id effect.ID) (effect.Effect, error) {
	f, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, id)
	}
	return f(), nil
}

func (r *Registry) Has(id effect.ID) bool {
	_, ok := r.factories[id]
	return ok
}

// List returns the registered identifiers in registration order.
func (r *Registry) List() []effect.ID {
	out := make([]effect.ID, len(r.order))
	copy(out, r.order)
	return out
}
