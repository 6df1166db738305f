// Package installer installs and removes the Hachimi payload for one game
// installation. It ties together the locator, the install-method table, the
// exe patcher and the Steam launch option editor.
package installer

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hachimi-dev/hachimi-installer/internal/assets"
	"github.com/hachimi-dev/hachimi-installer/internal/defs"
	"github.com/hachimi-dev/hachimi-installer/internal/fsutil"
	"github.com/hachimi-dev/hachimi-installer/internal/game"
	"github.com/hachimi-dev/hachimi-installer/internal/i18n"
	"github.com/hachimi-dev/hachimi-installer/internal/locator"
	"github.com/hachimi-dev/hachimi-installer/internal/peinfo"
	"github.com/hachimi-dev/hachimi-installer/internal/platform"
	"github.com/hachimi-dev/hachimi-installer/internal/process"
	"github.com/hachimi-dev/hachimi-installer/internal/steam"
	"github.com/hachimi-dev/hachimi-installer/internal/ui"
)

// ExpectedExeHash is the SHA-256 digest of the Steam JP executable the
// bundled patch applies to.
const ExpectedExeHash = "6519de9bbae11d3f7b779ce09b74e0a0c408b814518bff93da295c8f7b65ad5a"

// DefaultPollInterval is the delay between checks for a running Steam client.
const DefaultPollInterval = 500 * time.Millisecond

// TextFunc resolves a message key to localized text.
type TextFunc func(key string, params i18n.Params) string

// Payload supplies the bundled files.
type Payload interface {
	Read(name string) ([]byte, error)
}

// Discoverer finds game installations.
type Discoverer interface {
	Discover(ctx context.Context) locator.Candidates
}

// Registry reads and sets the machine-wide DLL redirection switch.
type Registry interface {
	DevOverrideEnabled() (bool, error)
	EnableDevOverride() error
}

// ProcessChecker reports whether a process with one of names is running.
type ProcessChecker interface {
	IsRunning(ctx context.Context, names ...string) (bool, error)
}

// Options configures an Installer. Zero values select the real system.
type Options struct {
	Target       game.Target
	CustomTarget string

	// Prompter asks the user. Nil answers every dialog like a
	// non-interactive run without --yes.
	Prompter ui.Prompter
	Progress ui.Progress

	Payload   Payload
	Locator   Discoverer
	Registry  Registry
	Processes ProcessChecker

	// SteamHome overrides Steam discovery.
	SteamHome string
	// SystemDir overrides the Windows system directory.
	SystemDir string

	ExpectedExeHash string
	PollInterval    time.Duration

	Getenv        func(string) string
	VersionReader func(path string) (game.VersionInfo, bool)
	Text          TextFunc
	Logger        *slog.Logger
}

// Installer holds the selected installation and target.
type Installer struct {
	opts Options

	candidates locator.Candidates
	installDir string
	channel    game.Channel
	selected   bool

	target       game.Target
	customTarget string
}

// New returns an Installer. Nothing is touched on disk until an install
// operation runs.
func New(opts Options) *Installer {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Payload == nil {
		opts.Payload = assets.Embedded()
	}
	if opts.Locator == nil {
		opts.Locator = locator.New(opts.Logger)
	}
	if opts.Processes == nil {
		opts.Processes = process.NewChecker()
	}
	if opts.Registry == nil {
		opts.Registry = platform.NewRegistry()
	}
	if opts.ExpectedExeHash == "" {
		opts.ExpectedExeHash = ExpectedExeHash
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.VersionReader == nil {
		opts.VersionReader = peinfo.Read
	}
	if opts.Text == nil {
		opts.Text = i18n.Text
	}
	return &Installer{
		opts:         opts,
		candidates:   locator.Candidates{},
		target:       opts.Target,
		customTarget: opts.CustomTarget,
	}
}

// DetectInstallDirs runs discovery and merges the results into the known
// candidates. If no directory is selected yet, the highest priority
// candidate is selected.
func (i *Installer) DetectInstallDirs(ctx context.Context) locator.Candidates {
	maps.Copy(i.candidates, i.opts.Locator.Discover(ctx))
	if !i.selected {
		if ch, dir, ok := i.candidates.First(); ok {
			i.installDir, i.channel, i.selected = dir, ch, true
			i.opts.Logger.Debug("install directory selected", "channel", ch, "dir", dir)
		}
	}
	return i.Candidates()
}

// Candidates returns a copy of the known installations.
func (i *Installer) Candidates() locator.Candidates {
	return maps.Clone(i.candidates)
}

// SetInstallDir selects dir after checking which channel it belongs to.
func (i *Installer) SetInstallDir(dir string) error {
	dir = filepath.Clean(dir)
	ch, ok := game.DetectChannel(dir)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidInstallDir, dir)
	}
	i.installDir, i.channel, i.selected = dir, ch, true
	i.candidates[ch] = dir
	return nil
}

// SelectChannel selects the known installation of ch.
func (i *Installer) SelectChannel(ch game.Channel) error {
	dir, ok := i.candidates[ch]
	if !ok {
		return fmt.Errorf("%w: no %s installation found", ErrNoInstallDir, ch.DisplayName())
	}
	return i.SetInstallDir(dir)
}

// InstallDir returns the selected directory, empty if none.
func (i *Installer) InstallDir() string {
	return i.installDir
}

// Channel returns the channel of the selected directory.
func (i *Installer) Channel() (game.Channel, bool) {
	return i.channel, i.selected
}

// Target returns the selected target.
func (i *Installer) Target() game.Target {
	return i.target
}

// SetTarget selects the DLL to install in place of.
func (i *Installer) SetTarget(t game.Target) {
	i.target = t
}

// SetCustomTarget overrides the file name the payload is written as.
// An empty name restores the target's own DLL name.
func (i *Installer) SetCustomTarget(name string) {
	i.customTarget = name
}

// Method returns the install method of t on the selected channel.
func (i *Installer) Method(t game.Target) (game.Method, error) {
	if !i.selected {
		return 0, ErrNoInstallDir
	}
	return game.MethodFor(t, i.channel), nil
}

// TargetPath returns where the payload for t lives on the selected channel.
func (i *Installer) TargetPath(t game.Target) (string, error) {
	return i.pathFor(t, t.DLLName())
}

// CurrentTargetPath is TargetPath for the selected target, honoring a
// custom target name.
func (i *Installer) CurrentTargetPath() (string, error) {
	name := i.target.DLLName()
	if i.customTarget != "" {
		name = i.customTarget
	}
	return i.pathFor(i.target, name)
}

func (i *Installer) pathFor(t game.Target, name string) (string, error) {
	m, err := i.Method(t)
	if err != nil {
		return "", err
	}
	switch m {
	case game.MethodSideLoad:
		return filepath.Join(i.localDir(), name), nil
	case game.MethodShimSwap:
		sys, err := i.systemDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(sys, name), nil
	default:
		return filepath.Join(i.installDir, name), nil
	}
}

// localDir is the executable's DLL redirection directory.
func (i *Installer) localDir() string {
	return filepath.Join(i.installDir, i.channel.ExeName()+".local")
}

func (i *Installer) systemDir() (string, error) {
	if i.opts.SystemDir != "" {
		return i.opts.SystemDir, nil
	}
	dir, err := platform.SystemDir()
	if err != nil {
		return "", fmt.Errorf("locate system directory: %w", err)
	}
	return dir, nil
}

// pluginPath is where the game ships the target DLL on ShimSwap channels.
func (i *Installer) pluginPath(t game.Target) string {
	return filepath.Join(i.installDir, filepath.FromSlash(defs.PluginsDir), t.DLLName())
}

// shadowPath is where the game's own DLL is parked while installed.
func (i *Installer) shadowPath(t game.Target) string {
	return filepath.Join(i.installDir, defs.ShadowDir, t.DLLName())
}

// TargetVersionInfo reads the version resource of the DLL installed for t.
func (i *Installer) TargetVersionInfo(t game.Target) (game.VersionInfo, bool) {
	path, err := i.TargetPath(t)
	if err != nil {
		return game.VersionInfo{}, false
	}
	return i.opts.VersionReader(path)
}

// TargetDisplayLabel returns the list label of t, naming what is installed.
func (i *Installer) TargetDisplayLabel(t game.Target) string {
	info, _ := i.TargetVersionInfo(t)
	return game.DisplayLabel(t, info)
}

// IsCurrentTargetInstalled reports whether a file exists at the current
// target path.
func (i *Installer) IsCurrentTargetInstalled() bool {
	path, err := i.CurrentTargetPath()
	if err != nil {
		return false
	}
	return fsutil.Exists(path)
}

// InstalledHachimiTarget returns the first target whose installed DLL is a
// Hachimi build.
func (i *Installer) InstalledHachimiTarget() (game.Target, bool) {
	for _, t := range game.Targets {
		if info, ok := i.TargetVersionInfo(t); ok && info.IsHachimi() {
			return t, true
		}
	}
	return 0, false
}

// validate checks that the selected directory still holds the executable of
// its channel.
func (i *Installer) validate() (game.Channel, error) {
	if !i.selected || i.installDir == "" {
		return 0, ErrNoInstallDir
	}
	ch, ok := game.DetectChannel(i.installDir)
	if !ok || ch != i.channel {
		return 0, fmt.Errorf("%w: %s", ErrInvalidInstallDir, i.installDir)
	}
	return ch, nil
}

func (i *Installer) underWine() bool {
	return i.opts.Getenv("WINEPREFIX") != "" || i.opts.Getenv("WINEDIR") != ""
}

func (i *Installer) text(key string, params i18n.Params) string {
	return i.opts.Text(key, params)
}

// confirm shows a dialog built from message keys.
func (i *Installer) confirm(kind ui.Kind, titleKey, bodyKey string, params i18n.Params) ui.Answer {
	title, body := i.text(titleKey, nil), i.text(bodyKey, params)
	p := i.opts.Prompter
	if p == nil {
		p = &ui.AutoPrompter{}
	}
	a := p.Confirm(kind, title, body)
	i.opts.Logger.Debug("prompt answered", "title", titleKey, "answer", a)
	return a
}

func (i *Installer) spinner(title string) ui.Spinner {
	if i.opts.Progress == nil {
		return nopSpinner{}
	}
	return i.opts.Progress.Spinner(title)
}

type nopSpinner struct{}

func (nopSpinner) SetTitle(string) {}
func (nopSpinner) Stop()           {}

func (i *Installer) steamClient() (*steam.Client, error) {
	if i.opts.SteamHome != "" {
		return steam.New(i.opts.SteamHome), nil
	}
	return steam.Locate()
}

func (i *Installer) launchOptions() steam.LaunchOptions {
	return steam.LaunchOptions{
		AppID:      strconv.FormatUint(uint64(i.channel.SteamAppID()), 10),
		BackupPath: filepath.Join(i.installDir, defs.LaunchOptionsBackup),
		Markers:    []string{defs.PatchedExe, defs.LauncherExe},
	}
}
