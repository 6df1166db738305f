package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/hachimi-dev/hachimi-installer/internal/assets"
	"github.com/hachimi-dev/hachimi-installer/internal/config"
	"github.com/hachimi-dev/hachimi-installer/internal/game"
	"github.com/hachimi-dev/hachimi-installer/internal/i18n"
	"github.com/hachimi-dev/hachimi-installer/internal/installer"
	"github.com/hachimi-dev/hachimi-installer/internal/locator"
	"github.com/hachimi-dev/hachimi-installer/internal/steam"
	"github.com/hachimi-dev/hachimi-installer/internal/ui"
)

type enabledRegistry struct{}

func (enabledRegistry) DevOverrideEnabled() (bool, error) { return true, nil }
func (enabledRegistry) EnableDevOverride() error          { return nil }

type idleProcesses struct{}

func (idleProcesses) IsRunning(context.Context, ...string) (bool, error) { return false, nil }

// testDeps wires Dependencies against temp directories and fakes.
func testDeps(t *testing.T) *Dependencies {
	t.Helper()

	mgr := config.NewManager(func(string) string { return "" })
	if _, err := mgr.Load(filepath.Join(t.TempDir(), "installer.yaml")); err != nil {
		t.Fatalf("load config: %v", err)
	}
	hm := ui.NewHeadlessManager()
	hm.ForceHeadless(true)
	theme := ui.NewTheme(ui.ThemeConfig{NoColor: true})

	loc := locator.New(slog.Default())
	loc.DMMConfigPath = filepath.Join(t.TempDir(), "dmmgame.cnf")
	loc.Steam = func() (*steam.Client, error) { return nil, steam.ErrSteamNotFound }

	return &Dependencies{
		Config:   mgr,
		Logger:   slog.Default(),
		Theme:    theme,
		Headless: hm,
		Prompter: &ui.AutoPrompter{AssumeYes: true},
		Payload: assets.FromFS(fstest.MapFS{
			"hachimi.dll": {Data: []byte("hachimi payload")},
			"cellar.dll":  {Data: []byte("cellar helper")},
		}),
		Locator: loc,
		NewInstaller: func(opts installer.Options) *installer.Installer {
			opts.Registry = enabledRegistry{}
			opts.Processes = idleProcesses{}
			return installer.New(opts)
		},
	}
}

func withDeps(t *testing.T, d *Dependencies) {
	t.Helper()
	orig := deps
	deps = d
	t.Cleanup(func() { deps = orig })
}

func gameDir(t *testing.T, ch game.Channel) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ch.ExeName()), []byte("MZ"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func setFlag(t *testing.T, f interface{ Set(string, string) error }, name, value string) {
	t.Helper()
	if err := f.Set(name, value); err != nil {
		t.Fatalf("set --%s: %v", name, err)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := map[string]bool{"install": false, "uninstall": false, "status": false, "config": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("%s should be registered as a subcommand of root", name)
		}
	}
	if len(statusCmd.Aliases) != 1 || statusCmd.Aliases[0] != "detect" {
		t.Errorf("status aliases = %v, want [detect]", statusCmd.Aliases)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "log-file", "verbose", "lang", "yes", "non-interactive"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("root should have --%s flag", name)
		}
	}
	for _, name := range []string{"dir", "channel", "target", "custom-target"} {
		if installCmd.Flags().Lookup(name) == nil || uninstallCmd.Flags().Lookup(name) == nil || statusCmd.Flags().Lookup(name) == nil {
			t.Errorf("install, uninstall and status should have --%s flag", name)
		}
	}
}

func TestExecute_PassesContext(t *testing.T) {
	withDeps(t, testDeps(t))

	type ctxKey struct{}
	var got context.Context
	child := &cobra.Command{
		Use: "ctxcheck",
		RunE: func(cmd *cobra.Command, _ []string) error {
			got = commandContext(cmd)
			return nil
		},
	}
	rootCmd.AddCommand(child)
	rootCmd.SetArgs([]string{"ctxcheck"})
	t.Cleanup(func() {
		rootCmd.RemoveCommand(child)
		rootCmd.SetArgs(nil)
	})

	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "root"))
	cancel()
	if err := execute(ctx); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if got == nil || got.Value(ctxKey{}) != "root" {
		t.Fatal("command should receive the context given to execute")
	}
	if !errors.Is(got.Err(), context.Canceled) {
		t.Errorf("cancellation should reach the command, got %v", got.Err())
	}
}

func TestInstallAndUninstall(t *testing.T) {
	i18n.SetLanguage("en")
	withDeps(t, testDeps(t))
	dir := gameDir(t, game.ChannelSteamGlobal)

	setFlag(t, installCmd.Flags(), "dir", dir)
	t.Cleanup(func() { installFlags = targetFlags{} })
	buf := new(bytes.Buffer)
	installCmd.SetOut(buf)
	installCmd.SetErr(buf)

	if err := installCmd.RunE(installCmd, nil); err != nil {
		t.Fatalf("install error: %v", err)
	}
	payload := filepath.Join(dir, "UmamusumePrettyDerby.exe.local", "UnityPlayer.dll")
	if _, err := os.Stat(payload); err != nil {
		t.Fatalf("payload not written: %v", err)
	}
	if !strings.Contains(buf.String(), payload) {
		t.Errorf("install output should name %s, got %q", payload, buf.String())
	}

	setFlag(t, uninstallCmd.Flags(), "dir", dir)
	t.Cleanup(func() { uninstallFlags = targetFlags{} })
	buf.Reset()
	uninstallCmd.SetOut(buf)
	uninstallCmd.SetErr(buf)

	if err := uninstallCmd.RunE(uninstallCmd, nil); err != nil {
		t.Fatalf("uninstall error: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(payload)); !errors.Is(err, os.ErrNotExist) {
		t.Error("redirection directory should be removed")
	}
}

func TestInstall_ChannelMismatch(t *testing.T) {
	withDeps(t, testDeps(t))
	dir := gameDir(t, game.ChannelDMM)

	setFlag(t, installCmd.Flags(), "dir", dir)
	setFlag(t, installCmd.Flags(), "channel", "steam")
	t.Cleanup(func() { installFlags = targetFlags{} })

	err := installCmd.RunE(installCmd, nil)
	if !errors.Is(err, installer.ErrInvalidInstallDir) {
		t.Errorf("install with mismatched channel: got %v, want ErrInvalidInstallDir", err)
	}
}

func TestInstall_NoDeps(t *testing.T) {
	withDeps(t, nil)
	if err := installCmd.RunE(installCmd, nil); err == nil {
		t.Error("install should fail without dependencies")
	}
}

func TestStatusMarkdown(t *testing.T) {
	i18n.SetLanguage("en")
	d := testDeps(t)
	dmm := gameDir(t, game.ChannelDMM)
	global := gameDir(t, game.ChannelSteamGlobal)

	inst := installer.New(installer.Options{
		Locator: staticLocator{game.ChannelDMM: dmm, game.ChannelSteamGlobal: global},
		VersionReader: func(path string) (game.VersionInfo, bool) {
			if filepath.Base(path) == "UnityPlayer.dll" {
				return game.VersionInfo{Name: "Hachimi", Version: "0.14.0"}, true
			}
			return game.VersionInfo{Name: "Unity Player", Version: "2022.3.21"}, true
		},
		SystemDir: t.TempDir(),
		Logger:    d.Logger,
	})
	inst.DetectInstallDirs(context.Background())

	md := statusMarkdown(inst, "0.14.1")
	for _, want := range []string{
		"# Hachimi Installer",
		"- **DMM**: `" + dmm + "` (selected)",
		"- **Steam (Global)**: `" + global + "`",
		"| UnityPlayer.dll | side-load | Hachimi | 0.14.0 | update available |",
		"| cri_mana_vpx.dll | shim-swap | Unity Player | 2022.3.21 | - |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("status should contain %q, got:\n%s", want, md)
		}
	}
}

func TestStatusMarkdown_NothingFound(t *testing.T) {
	i18n.SetLanguage("en")
	inst := installer.New(installer.Options{Locator: staticLocator{}})
	inst.DetectInstallDirs(context.Background())

	md := statusMarkdown(inst, "unknown")
	if !strings.Contains(md, "No installation found.") || strings.Contains(md, "## Targets") {
		t.Errorf("unexpected status:\n%s", md)
	}
}

func TestStatusCmd_Headless(t *testing.T) {
	i18n.SetLanguage("en")
	withDeps(t, testDeps(t))
	dir := gameDir(t, game.ChannelSteamGlobal)

	setFlag(t, statusCmd.Flags(), "dir", dir)
	t.Cleanup(func() { statusFlags = targetFlags{} })
	buf := new(bytes.Buffer)
	statusCmd.SetOut(buf)

	if err := statusCmd.RunE(statusCmd, nil); err != nil {
		t.Fatalf("status error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "# Hachimi Installer") {
		t.Errorf("headless status should be raw Markdown, got %q", buf.String())
	}
}

func TestConfigInit(t *testing.T) {
	d := testDeps(t)
	withDeps(t, d)
	buf := new(bytes.Buffer)
	configInitCmd.SetOut(buf)

	if err := configInitCmd.RunE(configInitCmd, nil); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if _, err := os.Stat(d.Config.Path()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if err := configInitCmd.RunE(configInitCmd, nil); err == nil {
		t.Error("second config init without --force should fail")
	}
}

func TestInitDependencies(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })
	origLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origLogger) })

	errOut := new(bytes.Buffer)
	d, err := InitDependencies(globalOptions{
		ConfigPath:     filepath.Join(t.TempDir(), "installer.yaml"),
		LogFile:        filepath.Join(t.TempDir(), "installer.log"),
		Lang:           "ja",
		NonInteractive: true,
		AssumeYes:      true,
	}, errOut)
	if err != nil {
		t.Fatalf("InitDependencies() error: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if !d.Headless.IsHeadless() {
		t.Error("--non-interactive should force headless mode")
	}
	if got := i18n.Current().Language(); got != language.Japanese {
		t.Errorf("language = %v, want ja", got)
	}
	if !d.Config.Get().System.AssumeYes {
		t.Error("--yes should be applied to the configuration")
	}
}

func TestInitDependencies_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installer.yaml")
	if err := os.WriteFile(path, []byte("game:\n  target: d3d11\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := InitDependencies(globalOptions{ConfigPath: path}, new(bytes.Buffer))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("InitDependencies: got %v, want ErrInvalidConfig", err)
	}
}

func TestNewLogger(t *testing.T) {
	origLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origLogger) })

	buf := new(bytes.Buffer)
	logger, closer := newLogger(config.SystemConfig{LogLevel: "error"}, true, buf)
	if closer != nil {
		t.Error("no log file: closer should be nil")
	}
	logger.Debug("probe")
	if !strings.Contains(buf.String(), "probe") {
		t.Error("--verbose should log at debug level")
	}

	buf.Reset()
	quiet, _ := newLogger(config.SystemConfig{LogLevel: "info"}, false, buf)
	quiet.Error("hidden")
	if buf.Len() != 0 {
		t.Error("without --verbose nothing should reach stderr")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMessageOutput(t *testing.T) {
	i18n.SetLanguage("en")
	buf := new(bytes.Buffer)
	printError(buf, installer.ErrNoInstallDir)
	if !strings.Contains(buf.String(), "No install location is selected") {
		t.Errorf("printError output = %q", buf.String())
	}
}

type staticLocator map[game.Channel]string

func (s staticLocator) Discover(context.Context) locator.Candidates {
	return locator.Candidates(s)
}
