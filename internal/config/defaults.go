package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// Default returns the built-in configuration: one human against three AI
// players on the classic map.
func Default() Config {
	return Config{
		TickRate: 30,
		MaxDelta: 100,
		Games:    3,
		Map:      "classic",
		Slots: []SlotConfig{
			{Team: 0},
			{Team: 1, AI: true},
			{Team: 2, AI: true},
			{Team: 3, AI: true},
		},
		Database: "~/.bomberman/results.db",
		Log:      LogConfig{Level: "info"},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
