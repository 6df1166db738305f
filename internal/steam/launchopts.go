package steam

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hachimi-dev/hachimi-installer/internal/defs"
	"github.com/hachimi-dev/hachimi-installer/internal/fsutil"
	"github.com/hachimi-dev/hachimi-installer/internal/vdf"
)

const launchOptionsKey = "LaunchOptions"

// LocalConfigs returns the localconfig.vdf of every Steam user on this
// machine, sorted by path.
func (c *Client) LocalConfigs() ([]string, error) {
	pattern := filepath.Join(c.Home, "userdata", "*", "config", defs.LocalConfigVDF)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("list user configs: %w", err)
	}
	configs := matches[:0]
	for _, m := range matches {
		if fileExists(m) {
			configs = append(configs, m)
		}
	}
	sort.Strings(configs)
	return configs, nil
}

// LaunchOptions edits one app's launch options across user configs and keeps
// the replaced value in a backup file. The backup file exists exactly while
// an override written by us is active.
type LaunchOptions struct {
	AppID      string
	BackupPath string
	// Markers identify values written by the installer. Restore only
	// touches a value that contains one of them.
	Markers []string
}

// ApplyResult describes what Apply changed.
type ApplyResult struct {
	// Config is the file that held the app block, empty if none did.
	Config   string
	Previous string
	Changed  bool
}

// Current returns the first launch options value found for the app.
func (l LaunchOptions) Current(configs []string) (string, bool) {
	for _, path := range configs {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if v, ok := vdf.Lookup(string(data), l.AppID, launchOptionsKey); ok {
			return v, true
		}
	}
	return "", false
}

// IsSet reports whether any config already holds exactly value.
func (l LaunchOptions) IsSet(configs []string, value string) bool {
	for _, path := range configs {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if v, ok := vdf.Lookup(string(data), l.AppID, launchOptionsKey); ok && v == value {
			return true
		}
	}
	return false
}

// Apply sets the launch options in the first config that has a block for
// the app. The previous value is written to the backup file before the
// config is replaced; if the config write fails a freshly written backup is
// removed again. Configs without the app block are left alone, and when no
// config has one nothing is written at all.
func (l LaunchOptions) Apply(configs []string, value string) (ApplyResult, error) {
	for _, path := range configs {
		data, err := os.ReadFile(path)
		if err != nil {
			return ApplyResult{}, fmt.Errorf("read %s: %w", path, err)
		}
		res, err := vdf.Upsert(string(data), l.AppID, launchOptionsKey, value)
		if errors.Is(err, vdf.ErrBlockNotFound) {
			continue
		}
		if err != nil {
			return ApplyResult{}, fmt.Errorf("edit %s: %w", path, err)
		}
		if res.Content == string(data) {
			return ApplyResult{Config: path, Previous: res.Previous}, nil
		}

		created, err := l.writeBackup(res.Previous)
		if err != nil {
			return ApplyResult{}, err
		}
		if err := fsutil.AtomicWrite(path, []byte(res.Content)); err != nil {
			if created {
				_ = os.Remove(l.BackupPath)
			}
			return ApplyResult{}, fmt.Errorf("write %s: %w", path, err)
		}
		return ApplyResult{Config: path, Previous: res.Previous, Changed: true}, nil
	}
	return ApplyResult{}, nil
}

// writeBackup stores previous unless a backup already exists and previous is
// one of our own values, in which case the older backup holds the user's
// original and is kept. It reports whether the file did not exist before.
func (l LaunchOptions) writeBackup(previous string) (bool, error) {
	existed := fsutil.Exists(l.BackupPath)
	if existed && l.isOurs(previous) {
		return false, nil
	}
	if err := fsutil.AtomicWrite(l.BackupPath, []byte(previous)); err != nil {
		return false, fmt.Errorf("write launch options backup: %w", err)
	}
	return !existed, nil
}

// Restore writes the backed up value back into every config whose current
// value was written by us, then deletes the backup. Without a backup it does
// nothing and reports false.
func (l LaunchOptions) Restore(configs []string) (bool, error) {
	data, err := os.ReadFile(l.BackupPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read launch options backup: %w", err)
	}
	backup := string(data)

	restored := false
	for _, path := range configs {
		buf, err := os.ReadFile(path)
		if err != nil {
			return restored, fmt.Errorf("read %s: %w", path, err)
		}
		cur, ok := vdf.Lookup(string(buf), l.AppID, launchOptionsKey)
		if !ok || !l.isOurs(cur) {
			continue
		}
		res, err := vdf.Upsert(string(buf), l.AppID, launchOptionsKey, backup)
		if err != nil {
			return restored, fmt.Errorf("edit %s: %w", path, err)
		}
		if err := fsutil.AtomicWrite(path, []byte(res.Content)); err != nil {
			return restored, fmt.Errorf("write %s: %w", path, err)
		}
		restored = true
	}

	if err := fsutil.RemoveIfExists(l.BackupPath); err != nil {
		return restored, fmt.Errorf("remove launch options backup: %w", err)
	}
	return restored, nil
}

func (l LaunchOptions) isOurs(value string) bool {
	for _, m := range l.Markers {
		if m != "" && strings.Contains(value, m) {
			return true
		}
	}
	return false
}
