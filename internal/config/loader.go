package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader reads the configuration file.
// It is thread-safe via sync.RWMutex.
type Loader struct {
	mu       sync.RWMutex
	fromFile bool
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the YAML file at path and returns its Config with defaults
// applied for missing fields. A missing file yields the defaults.
func (l *Loader) Load(path string) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.fromFile = false
	cfg := NewDefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("config file not found, using defaults", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", path, ErrInvalidYAML, err)
	}
	applyDefaults(cfg)
	l.fromFile = true
	return cfg, nil
}

// FromFile reports whether the last Load read an existing file.
func (l *Loader) FromFile() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fromFile
}
