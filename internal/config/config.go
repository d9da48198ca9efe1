// Package config provides YAML-based settings loading for the saver.
package config

import (
	"time"

	"github.com/vovakirdan/tetris-saver/internal/core"
)

// SaverConfig contains all tunable settings of the screensaver.
type SaverConfig struct {
	TickMS        int           `yaml:"tick_ms"`
	TileW         int           `yaml:"tile_w"`
	TileH         int           `yaml:"tile_h"`
	ExitThreshold int           `yaml:"exit_threshold"` // pointer travel in cells before exit
	ShowNext      bool          `yaml:"show_next"`
	JitterRange   int           `yaml:"jitter_range"`
	Background    string        `yaml:"background"` // hex color, empty for terminal default
	Preview       PreviewConfig `yaml:"preview"`
}

// PreviewConfig sizes the inline preview box.
type PreviewConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Interval returns the tick interval.
func (c SaverConfig) Interval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Runtime builds the core runtime configuration for a screen of the given size.
func (c SaverConfig) Runtime(screenW, screenH int, seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  screenW,
		ScreenH:  screenH,
		TileW:    c.TileW,
		TileH:    c.TileH,
		Interval: c.Interval(),
		Seed:     seed,
	}
}

// Normalize replaces out of range values with defaults.
func (c *SaverConfig) Normalize() {
	def := DefaultSaverConfig()
	if c.TickMS <= 0 {
		c.TickMS = def.TickMS
	}
	if c.TileW <= 0 {
		c.TileW = def.TileW
	}
	if c.TileH <= 0 {
		c.TileH = def.TileH
	}
	if c.ExitThreshold < 0 {
		c.ExitThreshold = def.ExitThreshold
	}
	if c.JitterRange < 4 {
		c.JitterRange = def.JitterRange
	}
	if c.Preview.Width <= 0 {
		c.Preview.Width = def.Preview.Width
	}
	if c.Preview.Height <= 0 {
		c.Preview.Height = def.Preview.Height
	}
}
