package config

import (
	"slices"

	"github.com/san-kum/particlelab/internal/effect"
	"github.com/san-kum/particlelab/internal/snippets"
)

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"compact": {
		Effect: effect.Connecting, Width: 480, Height: 320, FPS: 30,
		Tab: snippets.JS, Backend: "tui", Clipboard: "default",
	},
	"window": {
		Effect: effect.GravityOrbs, Width: 1280, Height: 720, FPS: 60,
		Tab: snippets.JS, Backend: "gui", Clipboard: "default",
	},
	"tmux": {
		Effect: effect.Matrix, Width: DefaultWidth, Height: DefaultHeight, FPS: 30,
		Tab: snippets.JS, Backend: "tui", Clipboard: "tmux",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
