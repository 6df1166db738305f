// Package cli provides the Cobra command tree and dependency injection
// wiring for the installer CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hachimi-dev/hachimi-installer/internal/assets"
	"github.com/hachimi-dev/hachimi-installer/internal/config"
	"github.com/hachimi-dev/hachimi-installer/internal/game"
	"github.com/hachimi-dev/hachimi-installer/internal/i18n"
	"github.com/hachimi-dev/hachimi-installer/internal/installer"
	"github.com/hachimi-dev/hachimi-installer/internal/locator"
	"github.com/hachimi-dev/hachimi-installer/internal/steam"
	"github.com/hachimi-dev/hachimi-installer/internal/ui"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config   *config.Manager
	Logger   *slog.Logger
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Prompter ui.Prompter
	Progress ui.Progress
	Payload  *assets.Bundle
	Locator  *locator.Locator

	// NewInstaller builds an Installer for a command. Tests replace it.
	NewInstaller func(opts installer.Options) *installer.Installer

	logCloser io.Closer
}

// deps is the global dependencies instance, initialized by InitDependencies.
// CLI commands access this through the package-level variable.
var deps *Dependencies

// globalOptions are the values of the root command's persistent flags.
type globalOptions struct {
	ConfigPath     string
	LogFile        string
	Lang           string
	Verbose        bool
	AssumeYes      bool
	NonInteractive bool
}

// InitDependencies loads the configuration, applies flag overrides and
// wires the domain services. errOut receives prompts, progress and, with
// Verbose, the log.
func InitDependencies(opts globalOptions, errOut io.Writer) (*Dependencies, error) {
	mgr := config.NewManager(os.Getenv)
	cfg, err := mgr.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// Flags beat environment and file values.
	if opts.Lang != "" {
		cfg.System.Language = opts.Lang
	}
	if opts.LogFile != "" {
		cfg.System.LogFile = opts.LogFile
	}
	if opts.AssumeYes {
		cfg.System.AssumeYes = true
	}
	if opts.NonInteractive {
		cfg.System.NonInteractive = true
	}

	prefs := i18n.DetectPreferences(os.Getenv)
	if cfg.System.Language != "" {
		prefs = append([]string{cfg.System.Language}, prefs...)
	}
	i18n.SetLanguage(prefs...)

	logger, closer := newLogger(cfg.System, opts.Verbose, errOut)

	hm := ui.NewHeadlessManager()
	if cfg.System.NonInteractive {
		hm.ForceHeadless(true)
	}
	theme := ui.NewTheme(ui.ThemeConfig{NoColor: cfg.System.NoColor})

	payload := assets.Embedded()
	if cfg.Payload.Dir != "" {
		payload = assets.FromDir(cfg.Payload.Dir)
	}

	loc := locator.New(logger)
	if cfg.DMM.ConfigPath != "" {
		loc.DMMConfigPath = cfg.DMM.ConfigPath
	}
	if dir := cfg.Steam.Dir; dir != "" {
		loc.Steam = func() (*steam.Client, error) { return steam.New(dir), nil }
	}

	d := &Dependencies{
		Config:       mgr,
		Logger:       logger,
		Theme:        theme,
		Headless:     hm,
		Prompter:     ui.NewPrompter(theme, hm, cfg.System.AssumeYes, errOut),
		Progress:     ui.NewProgress(theme, hm),
		Payload:      payload,
		Locator:      loc,
		NewInstaller: installer.New,
		logCloser:    closer,
	}
	logger.Debug("dependencies initialized",
		"config", mgr.Path(),
		"config_file", mgr.FromFile(),
		"language", i18n.Current().Language(),
		"headless", hm.IsHeadless(),
	)
	return d, nil
}

// Close releases the log file.
func (d *Dependencies) Close() error {
	if d == nil || d.logCloser == nil {
		return nil
	}
	return d.logCloser.Close()
}

// Installer builds an Installer from the configuration and the command's
// target flags.
func (d *Dependencies) Installer(target game.Target, customTarget string) *installer.Installer {
	cfg := d.Config.Get()
	return d.NewInstaller(installer.Options{
		Target:       target,
		CustomTarget: customTarget,
		Prompter:     d.Prompter,
		Progress:     d.Progress,
		Payload:      d.Payload,
		Locator:      d.Locator,
		SteamHome:    cfg.Steam.Dir,
		PollInterval: cfg.Steam.PollInterval,
		Text:         i18n.Text,
		Logger:       d.Logger,
	})
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// newLogger builds the process logger. Without --verbose or a log file
// everything is discarded, since command output is meant for people.
// The log file is rotated by lumberjack.
func newLogger(sys config.SystemConfig, verbose bool, errOut io.Writer) (*slog.Logger, io.Closer) {
	var (
		writers []io.Writer
		closer  io.Closer
	)
	level := parseLevel(sys.LogLevel)
	if verbose {
		writers = append(writers, errOut)
		level = slog.LevelDebug
	}
	if sys.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   filepath.Clean(sys.LogFile),
			MaxSize:    5, // MB
			MaxBackups: 3,
			MaxAge:     30, // days
		}
		writers = append(writers, lj)
		closer = lj
	}
	if len(writers) == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	logger := slog.New(slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closer
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// requireDeps returns the initialized dependencies or an error.
func requireDeps() (*Dependencies, error) {
	if deps == nil {
		return nil, fmt.Errorf("dependencies not initialized")
	}
	return deps, nil
}
