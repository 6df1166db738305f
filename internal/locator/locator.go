// Package locator finds installations of the game for each distribution
// channel. Probes never fail: anything unexpected just means "not found".
package locator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/hachimi-dev/hachimi-installer/internal/defs"
	"github.com/hachimi-dev/hachimi-installer/internal/fsutil"
	"github.com/hachimi-dev/hachimi-installer/internal/game"
	"github.com/hachimi-dev/hachimi-installer/internal/steam"
)

// Candidates maps each channel to the install directory found for it.
type Candidates map[game.Channel]string

// First returns the first candidate in channel priority order.
func (c Candidates) First() (game.Channel, string, bool) {
	for _, ch := range game.Channels {
		if dir, ok := c[ch]; ok && dir != "" {
			return ch, dir, true
		}
	}
	return 0, "", false
}

// SteamLocator returns a Steam client, or an error when Steam is absent.
type SteamLocator func() (*steam.Client, error)

// Locator runs the discovery probes.
type Locator struct {
	// DMMConfigPath is the DMM Game Player library file. Empty selects the
	// default location below the user config directory.
	DMMConfigPath string
	Steam         SteamLocator
	Logger        *slog.Logger
}

// New returns a Locator with the default probes.
func New(logger *slog.Logger) *Locator {
	return &Locator{Steam: steam.Locate, Logger: logger}
}

// Discover runs every probe and returns the directories found. Probe errors
// are logged at debug level and otherwise ignored.
func (l *Locator) Discover(ctx context.Context) Candidates {
	found := Candidates{}
	var errs *multierror.Error

	if dir, err := l.probeDMM(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("dmm: %w", err))
	} else if dir != "" {
		found[game.ChannelDMM] = dir
	}

	if ctx.Err() == nil {
		for _, ch := range []game.Channel{game.ChannelSteam, game.ChannelSteamGlobal} {
			dir, err := l.probeSteam(ch)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", ch, err))
				continue
			}
			if dir != "" {
				found[ch] = dir
			}
		}
	}

	if err := errs.ErrorOrNil(); err != nil && l.Logger != nil {
		l.Logger.Debug("install dir probes reported errors", "errors", err.Error())
	}
	for ch, dir := range found {
		if l.Logger != nil {
			l.Logger.Debug("install dir found", "channel", ch.String(), "dir", dir)
		}
	}
	return found
}

type dmmConfig struct {
	Contents []struct {
		ProductID string `json:"productId"`
		Detail    struct {
			Path string `json:"path"`
		} `json:"detail"`
	} `json:"contents"`
}

func (l *Locator) dmmConfigPath() (string, error) {
	if l.DMMConfigPath != "" {
		return l.DMMConfigPath, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, defs.DMMConfigDir, defs.DMMConfig), nil
}

// probeDMM reads the DMM Game Player library and returns the game's
// directory when it exists.
func (l *Locator) probeDMM() (string, error) {
	path, err := l.dmmConfigPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var cfg dmmConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	for _, c := range cfg.Contents {
		if c.ProductID != "umamusume" {
			continue
		}
		dir := filepath.Clean(c.Detail.Path)
		if c.Detail.Path != "" && fsutil.IsDir(dir) {
			return dir, nil
		}
		return "", nil
	}
	return "", nil
}

// probeSteam looks the channel's app up in the Steam library index and
// returns its directory when the channel executable is present.
func (l *Locator) probeSteam(ch game.Channel) (string, error) {
	if l.Steam == nil {
		return "", nil
	}
	client, err := l.Steam()
	if err != nil {
		return "", err
	}
	app, err := client.FindApp(ch.SteamAppID())
	if err != nil {
		return "", err
	}
	dir := app.Dir()
	if got, ok := game.DetectChannel(dir); !ok || got != ch {
		return "", nil
	}
	return dir, nil
}
