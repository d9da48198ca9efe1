package config

import (
	_ "embed"
)

//go:embed defaults/saver.yaml
var defaultSaverYAML []byte

// DefaultSaverConfig returns the default saver configuration.
func DefaultSaverConfig() SaverConfig {
	return SaverConfig{
		TickMS:        100,
		TileW:         2,
		TileH:         1,
		ExitThreshold: 1,
		ShowNext:      true,
		JitterRange:   32,
		Background:    "#000000",
		Preview: PreviewConfig{
			Width:  40,
			Height: 12,
		},
	}
}
