package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNewMatchesLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefs []string
		want  language.Tag
	}{
		{nil, language.English},
		{[]string{"ja_JP.UTF-8"}, language.Japanese},
		{[]string{"ja-JP"}, language.Japanese},
		{[]string{"fr-FR"}, language.English},
		{[]string{"not a tag"}, language.English},
	}
	for _, tt := range tests {
		if got := New(tt.prefs...).Language(); got != tt.want {
			t.Errorf("New(%v).Language(): got %v, want %v", tt.prefs, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	en := New("en")
	got := en.Text("error.cannot_find_target", Params{"target": "cri_mana_vpx.dll"})
	if got != "Could not find cri_mana_vpx.dll in the game folder." {
		t.Errorf("Text: got %q", got)
	}

	ja := New("ja")
	if got := ja.Text("error.generic", Params{"error": "boom"}); got != "boom" {
		t.Errorf("fallback to English: got %q", got)
	}
	if got := ja.Text("no.such.key", nil); got != "no.such.key" {
		t.Errorf("missing key: got %q", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	t.Parallel()

	for key := range catalogs[language.Japanese] {
		if _, ok := catalogs[language.English][key]; !ok {
			t.Errorf("key %q missing from the English catalog", key)
		}
	}
}

func TestDetectPreferences(t *testing.T) {
	t.Parallel()

	env := map[string]string{"LC_ALL": "C", "LANG": "ja_JP.UTF-8"}
	got := DetectPreferences(func(k string) string { return env[k] })
	if len(got) != 1 || got[0] != "ja_JP.UTF-8" {
		t.Errorf("DetectPreferences: got %v", got)
	}
}
