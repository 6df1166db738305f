package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hachimi-dev/hachimi-installer/internal/defs"
	"github.com/hachimi-dev/hachimi-installer/internal/fsutil"
)

// Manager provides thread-safe access to the loaded configuration.
// It must be initialized via Load() before use.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	path   string
	loader *Loader
	getenv func(string) string
}

// NewManager creates a Manager that reads environment overrides through
// getenv. A nil getenv uses os.Getenv.
func NewManager(getenv func(string) string) *Manager {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Manager{loader: NewLoader(), getenv: getenv}
}

// DefaultPath returns the configuration file used when none is given:
// $HACHIMI_CONFIG, else installer.yaml in the user config directory.
func DefaultPath(getenv func(string) string) string {
	if p := getenv("HACHIMI_CONFIG"); p != "" {
		return filepath.Clean(p)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, defs.AppConfigDir, defs.ConfigYAML)
}

// Load reads the configuration from path, or from DefaultPath when path is
// empty. It merges file values with compiled defaults and applies
// environment variable overrides. The configuration is validated before
// being stored.
func (m *Manager) Load(path string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if path == "" {
		path = DefaultPath(m.getenv)
	}

	cfg, err := m.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Apply environment variable overrides (higher priority than the file)
	applyEnvOverrides(cfg, m.getenv)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	m.config = cfg
	m.path = path
	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the file the configuration was loaded from.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// FromFile reports whether the configuration file existed.
func (m *Manager) FromFile() bool {
	return m.loader.FromFile()
}

// Save writes the current configuration to Path atomically.
// Returns ErrNotInitialized if Load() has not been called.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return ErrNotInitialized
	}
	if m.path == "" {
		return fmt.Errorf("save config: no config path")
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return fsutil.AtomicWrite(m.path, data)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables have higher priority than file-based values.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if dir := getenv("HACHIMI_INSTALL_DIR"); dir != "" {
		cfg.Game.InstallDir = dir
	}
	if dir := getenv("HACHIMI_STEAM_DIR"); dir != "" {
		cfg.Steam.Dir = dir
	}
	if lang := getenv("HACHIMI_LANG"); lang != "" {
		cfg.System.Language = lang
	}
	if level := getenv("HACHIMI_LOG_LEVEL"); level != "" {
		cfg.System.LogLevel = strings.ToLower(level)
	}
	if envTrue(getenv("HACHIMI_NON_INTERACTIVE")) {
		cfg.System.NonInteractive = true
	}
	if envTrue(getenv("HACHIMI_NO_COLOR")) || getenv("NO_COLOR") != "" {
		cfg.System.NoColor = true
	}
}

func envTrue(v string) bool {
	return v == "true" || v == "1"
}
