package ebitenhost

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// RunConfig configures Run. Zero fields take defaults.
type RunConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// TPS is the tick rate; 0 keeps Ebitengine's default.
	TPS int `toml:"tps"`
	// Debug enables tree debug checks and the focus overlay.
	Debug bool `toml:"debug"`
	// Script is a path to a JSON input script run on start.
	Script string `toml:"script"`
	// ExitOnScriptDone ends the game loop once the script has finished.
	ExitOnScriptDone bool `toml:"exit_on_script_done"`
}

const (
	defaultTitle  = "Sprite Atlas Visualizer"
	defaultWidth  = 1024
	defaultHeight = 768
)

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	return c
}

// LoadRunConfig parses a TOML run configuration on top of base: keys absent
// from data keep base's values, and fields still zero after that take the
// package defaults. Unknown keys are rejected.
func LoadRunConfig(data []byte, base RunConfig) (RunConfig, error) {
	cfg := base
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	return cfg.withDefaults(), nil
}

// LoadRunConfigFile reads and parses a TOML run configuration file on top of
// base.
func LoadRunConfigFile(path string, base RunConfig) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("read run config: %w", err)
	}
	return LoadRunConfig(data, base)
}
