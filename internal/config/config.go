package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlelab/internal/effect"
	"github.com/san-kum/particlelab/internal/export"
	"github.com/san-kum/particlelab/internal/snippets"
)

const (
	DefaultEffect  = effect.Floating
	DefaultWidth   = 960
	DefaultHeight  = 600
	DefaultFPS     = 60
	DefaultTab     = snippets.JS
	DefaultBackend = "tui"
)

type Config struct {
	Effect    effect.ID    `yaml:"effect"`
	Width     int          `yaml:"width"`
	Height    int          `yaml:"height"`
	FPS       int          `yaml:"fps"`
	Seed      int64        `yaml:"seed"`
	Tab       snippets.Tab `yaml:"tab"`
	Backend   string       `yaml:"backend"`
	Clipboard export.Mode  `yaml:"clipboard"`
}

func DefaultConfig() *Config {
	return &Config{
		Effect:    DefaultEffect,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		FPS:       DefaultFPS,
		Tab:       DefaultTab,
		Backend:   DefaultBackend,
		Clipboard: export.ModeDefault,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !c.Effect.Valid() {
		return fmt.Errorf("unknown effect: %s", c.Effect)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("surface size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if !c.Tab.Valid() {
		return fmt.Errorf("unknown tab: %s", c.Tab)
	}
	switch c.Backend {
	case "tui", "gui":
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	switch c.Clipboard {
	case export.ModeDefault, export.ModeTmux, export.ModeScreen:
	default:
		return fmt.Errorf("unknown clipboard mode: %s", c.Clipboard)
	}
	return nil
}
