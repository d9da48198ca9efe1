package core

import "time"

// RuntimeConfig contains configuration passed to the saver at initialization.
// The board size is derived from the screen size divided by the tile size.
type RuntimeConfig struct {
	ScreenW  int           // Screen width in characters
	ScreenH  int           // Screen height in characters
	TileW    int           // Characters per board column
	TileH    int           // Characters per board row
	Interval time.Duration // Time between simulation ticks
	Seed     int64         // RNG seed (0 means time-based)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TileW:    2,
		TileH:    1,
		Interval: 100 * time.Millisecond,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// BoardSize returns how many whole tiles fit on the screen.
func (c RuntimeConfig) BoardSize() (w, h int) {
	tw, th := Max(c.TileW, 1), Max(c.TileH, 1)
	return c.ScreenW / tw, c.ScreenH / th
}
