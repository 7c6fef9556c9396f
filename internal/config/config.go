// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines on stderr.
	LogFormat string `koanf:"log_format"`

	// DataDir holds the save and settings documents.
	DataDir string `koanf:"data_dir"`

	// SaveFile is the save document name, relative to DataDir unless absolute.
	SaveFile string `koanf:"save_file"`

	// SettingsFile is the settings document name, relative to DataDir unless absolute.
	SettingsFile string `koanf:"settings_file"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`

	// PersistOnMutation saves the game after every successful mutating CRUD command.
	PersistOnMutation bool `koanf:"persist_on_mutation"`

	// WeeklyFinances closes the player promotion's books on every weekly tick.
	WeeklyFinances bool `koanf:"weekly_finances"`

	// Difficulty is recorded in the game state of new games.
	Difficulty string `koanf:"difficulty"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		DataDir:           "game-data",
		SaveFile:          "save-data.json",
		SettingsFile:      "settings.json",
		PersistOnMutation: true,
		WeeklyFinances:    false,
		Difficulty:        "normal",
	}
}

// SavePath is the resolved location of the save document.
func (c *Config) SavePath() string {
	return c.resolve(c.SaveFile)
}

// SettingsPath is the resolved location of the settings document.
func (c *Config) SettingsPath() string {
	return c.resolve(c.SettingsFile)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
