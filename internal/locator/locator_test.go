package locator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hachimi-dev/hachimi-installer/internal/game"
	"github.com/hachimi-dev/hachimi-installer/internal/steam"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func noSteam() (*steam.Client, error) {
	return nil, steam.ErrSteamNotFound
}

func TestProbeDMM(t *testing.T) {
	t.Parallel()

	gameDir := t.TempDir()
	cfg := filepath.Join(t.TempDir(), "dmmgame.cnf")
	writeFile(t, cfg, `{"contents":[`+
		`{"productId":"other","detail":{"path":"/nope"}},`+
		`{"productId":"umamusume","detail":{"path":`+quote(gameDir)+`}}]}`)

	l := &Locator{DMMConfigPath: cfg, Steam: noSteam}
	got := l.Discover(context.Background())
	if got[game.ChannelDMM] != gameDir {
		t.Errorf("DMM candidate: got %q, want %q", got[game.ChannelDMM], gameDir)
	}
	ch, dir, ok := got.First()
	if !ok || ch != game.ChannelDMM || dir != gameDir {
		t.Errorf("First: got %v %q %v", ch, dir, ok)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
}

func TestProbeDMMTolerance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: "{not json"},
		{name: "missing detail", content: `{"contents":[{"productId":"umamusume"}]}`},
		{name: "path is not a dir", content: `{"contents":[{"productId":"umamusume","detail":{"path":"/definitely/missing"}}]}`},
		{name: "wrong shape", content: `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := filepath.Join(t.TempDir(), "dmmgame.cnf")
			writeFile(t, cfg, tt.content)
			l := &Locator{DMMConfigPath: cfg, Steam: noSteam}
			if got := l.Discover(context.Background()); len(got) != 0 {
				t.Errorf("Discover: got %v, want nothing", got)
			}
		})
	}

	l := &Locator{DMMConfigPath: filepath.Join(t.TempDir(), "missing.cnf"), Steam: noSteam}
	if got := l.Discover(context.Background()); len(got) != 0 {
		t.Errorf("missing DMM config: got %v", got)
	}
}

func TestProbeSteam(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	apps := filepath.Join(home, "steamapps")
	writeFile(t, filepath.Join(apps, "appmanifest_3564400.acf"),
		"\"AppState\"\n{\n\t\"appid\"\t\t\"3564400\"\n\t\"installdir\"\t\t\"UmamusumePrettyDerby_Jpn\"\n}\n")
	writeFile(t, filepath.Join(apps, "common", "UmamusumePrettyDerby_Jpn", "UmamusumePrettyDerby_Jpn.exe"), "MZ")
	// Global manifest points at a directory without the executable.
	writeFile(t, filepath.Join(apps, "appmanifest_3224770.acf"),
		"\"AppState\"\n{\n\t\"appid\"\t\t\"3224770\"\n\t\"installdir\"\t\t\"UmamusumePrettyDerby\"\n}\n")

	l := &Locator{
		DMMConfigPath: filepath.Join(t.TempDir(), "missing.cnf"),
		Steam:         func() (*steam.Client, error) { return steam.New(home), nil },
	}
	got := l.Discover(context.Background())
	want := filepath.Join(apps, "common", "UmamusumePrettyDerby_Jpn")
	if got[game.ChannelSteam] != want {
		t.Errorf("Steam candidate: got %q, want %q", got[game.ChannelSteam], want)
	}
	if _, ok := got[game.ChannelSteamGlobal]; ok {
		t.Error("Global candidate without executable must be rejected")
	}
}

func TestDiscoverWithoutSteam(t *testing.T) {
	t.Parallel()

	l := &Locator{
		DMMConfigPath: filepath.Join(t.TempDir(), "missing.cnf"),
		Steam:         func() (*steam.Client, error) { return nil, errors.New("boom") },
	}
	if got := l.Discover(context.Background()); len(got) != 0 {
		t.Errorf("Discover: got %v, want nothing", got)
	}
	if _, _, ok := (Candidates{}).First(); ok {
		t.Error("First on empty candidates: expected false")
	}
}
