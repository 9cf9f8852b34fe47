package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/datesim.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches
// defaults/datesim.yaml and is used if the embedded file cannot be parsed.
func Default() Config {
	return Config{
		UI: UIConfig{
			TickRate:  30,
			BoxWidth:  14,
			BoxHeight: 5,
			Autosave:  true,
		},
		Storage: StorageConfig{
			DBPath: "~/.datesim/saves.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.datesim/datesim.log",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
			Dir:     "~/.datesim/telemetry",
		},
		Server: ServerConfig{
			Address:     ":23235",
			HostKeyPath: "~/.datesim/host_key",
			IdleTimeout: 30 * time.Minute,
			TickRate:    30,
		},
	}
}
