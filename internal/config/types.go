package config

import "time"

// Config is the root configuration aggregate containing all sections.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Steam   SteamConfig   `yaml:"steam"`
	DMM     DMMConfig     `yaml:"dmm"`
	Payload PayloadConfig `yaml:"payload"`
	System  SystemConfig  `yaml:"system"`
}

// GameConfig selects the installation and the DLL to replace.
type GameConfig struct {
	InstallDir   string `yaml:"install_dir,omitempty"`
	Channel      string `yaml:"channel,omitempty"` // "dmm", "steam", "steam-global"
	Target       string `yaml:"target"`            // "unityplayer", "cri_mana_vpx"
	CustomTarget string `yaml:"custom_target,omitempty"`
}

// SteamConfig represents the steam configuration section.
type SteamConfig struct {
	Dir          string        `yaml:"dir,omitempty"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DMMConfig represents the dmm configuration section.
type DMMConfig struct {
	ConfigPath string `yaml:"config_path,omitempty"`
}

// PayloadConfig points at an unpacked payload directory used instead of the
// files built into the binary.
type PayloadConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// SystemConfig represents the system configuration section.
type SystemConfig struct {
	Language       string `yaml:"language,omitempty"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file,omitempty"`
	NonInteractive bool   `yaml:"non_interactive"`
	AssumeYes      bool   `yaml:"assume_yes"`
	NoColor        bool   `yaml:"no_color"`
}
