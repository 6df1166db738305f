package config

import "time"

// Default value constants to avoid magic numbers and strings.
const (
	DefaultTarget       = "unityplayer"
	DefaultPollInterval = 500 * time.Millisecond
	DefaultLogLevel     = "info"
)

// NewDefaultConfig returns a Config with all default values applied.
func NewDefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			Target: DefaultTarget,
		},
		Steam: SteamConfig{
			PollInterval: DefaultPollInterval,
		},
		System: SystemConfig{
			LogLevel: DefaultLogLevel,
		},
	}
}

// applyDefaults fills fields a config file left empty.
func applyDefaults(cfg *Config) {
	if cfg.Game.Target == "" {
		cfg.Game.Target = DefaultTarget
	}
	if cfg.Steam.PollInterval == 0 {
		cfg.Steam.PollInterval = DefaultPollInterval
	}
	if cfg.System.LogLevel == "" {
		cfg.System.LogLevel = DefaultLogLevel
	}
}
