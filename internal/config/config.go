// Package config loads the YAML configuration of the bombman binaries.
package config

import (
	"fmt"

	"github.com/amalg/go-bombman/internal/game"
)

// Config contains everything the CLI needs to set up a match.
type Config struct {
	TickRate int    `yaml:"tick_rate"`    // simulation steps per second
	MaxDelta int    `yaml:"max_delta_ms"` // upper bound of one step, ms
	Games    int    `yaml:"games"`
	Map      string `yaml:"map"`
	Seed     int64  `yaml:"seed"` // 0 picks a time-based seed

	// TimeLimit ends a game as a draw after this many ms; 0 means never.
	TimeLimit int `yaml:"time_limit_ms"`

	Slots    []SlotConfig `yaml:"slots"`
	Database string       `yaml:"database"`
	Log      LogConfig    `yaml:"log"`
}

// SlotConfig occupies one player slot. The list index is the slot index.
type SlotConfig struct {
	Team int  `yaml:"team"`
	AI   bool `yaml:"ai"`
}

// LogConfig defines where and how much the binaries log.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// PlaySetup converts the slot list into a game setup.
func (c Config) PlaySetup() (game.PlaySetup, error) {
	var s game.PlaySetup
	if len(c.Slots) == 0 {
		return s, fmt.Errorf("config: no player slots")
	}
	if len(c.Slots) > game.MaxPlayers {
		return s, fmt.Errorf("config: %d slots, at most %d allowed", len(c.Slots), game.MaxPlayers)
	}
	for i, sc := range c.Slots {
		ctrl := game.ControllerHuman
		if sc.AI {
			ctrl = game.ControllerAI
		}
		s.Slots[i] = &game.Slot{Team: sc.Team, Controller: ctrl}
	}
	return s, nil
}

// Validate fills zero values with defaults and rejects nonsense.
func (c *Config) Validate() error {
	def := Default()
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.MaxDelta <= 0 {
		c.MaxDelta = def.MaxDelta
	}
	if c.Games <= 0 {
		c.Games = def.Games
	}
	if c.Map == "" {
		c.Map = def.Map
	}
	if len(c.Slots) == 0 {
		c.Slots = def.Slots
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	_, err := c.PlaySetup()
	return err
}
