// Package config provides YAML-based configuration for datesim, with
// embedded defaults and an environment overlay.
package config

import "time"

// Config is the top-level datesim configuration.
type Config struct {
	UI        UIConfig        `yaml:"ui"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Server    ServerConfig    `yaml:"server"`
}

// UIConfig controls the terminal front end.
type UIConfig struct {
	TickRate   int  `yaml:"tick_rate" env:"DATESIM_TICK_RATE"` // Input sampling ticks per second
	ShowLedger bool `yaml:"show_ledger"`                       // Open the ledger panel on start
	BoxWidth   int  `yaml:"box_width"`                         // Character box width, 0 = auto
	BoxHeight  int  `yaml:"box_height"`
	Autosave   bool `yaml:"autosave"` // Save after every finished conversation
}

// StorageConfig locates the save database.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"DATESIM_DB"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level" env:"DATESIM_LOG_LEVEL"` // debug, info, warn, error
	File  string `yaml:"file" env:"DATESIM_LOG_FILE"`   // Used while the TUI owns the terminal
}

// TelemetryConfig controls CSV event output.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled" env:"DATESIM_TELEMETRY"`
	Dir     string `yaml:"dir" env:"DATESIM_TELEMETRY_DIR"`
}

// ServerConfig controls `datesim serve`.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"DATESIM_SSH_ADDR"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	TickRate    int           `yaml:"tick_rate"`
}
