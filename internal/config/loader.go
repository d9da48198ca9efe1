package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const fileName = "saver.yaml"

// Load loads saver configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/tetris-saver/saver.yaml -> ./configs/saver.yaml -> embedded default
func Load(customPath string) (SaverConfig, error) {
	// Fields missing from a file keep their defaults
	cfg := DefaultSaverConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Normalize()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if parsed, ok := tryFile(userCfgPath); ok {
			return parsed, nil
		}
	}

	// Try local configs directory
	if parsed, ok := tryFile(filepath.Join("configs", fileName)); ok {
		return parsed, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSaverYAML, &cfg); err != nil {
		return DefaultSaverConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Normalize()
	return cfg, nil
}

// tryFile parses path over the defaults. Unreadable or invalid files are skipped.
func tryFile(path string) (SaverConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SaverConfig{}, false
	}
	cfg := DefaultSaverConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SaverConfig{}, false
	}
	cfg.Normalize()
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if it cannot be resolved.
func userConfigPath(filename string) string {
	if xdg.ConfigHome == "" {
		return ""
	}
	return filepath.Join(xdg.ConfigHome, "tetris-saver", filename)
}
