package registry

import (
	"errors"
	"slices"
	"testing"

	"github.com/san-kum/particlelab/internal/effect"
)

func TestRegistryCoversEveryEffect(t *testing.T) {
	r := New()

	if !slices.Equal(r.List(), effect.IDs()) {
		t.Errorf("expected %v, got %v", effect.IDs(), r.List())
	}
	for _, id := range effect.IDs() {
		e, err := r.Lookup(id)
		if err != nil {
			t.Errorf("lookup %s: %v", id, err)
			continue
		}
		if e.ID() != id {
			t.Errorf("lookup %s returned %s", id, e.ID())
		}
	}
}

func TestRegistryFreshInstances(t *testing.T) {
	r := New()
	a, _ := r.Lookup(effect.Connecting)
	b, _ := r.Lookup(effect.Connecting)
	if a == b {
		t.Error("expected a fresh instance per lookup")
	}
}

func TestRegistryUnknown(t *testing.T) {
	r := New()
	_, err := r.Lookup("plasma")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("expected ErrUnknownEffect, got %v", err)
	}
	if r.Has("plasma") {
		t.Error("expected Has to report false")
	}
}
