// Package i18n renders user-facing messages from string keys.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Params are substituted for {name} placeholders.
type Params map[string]any

// Supported lists the catalog languages; the first is the fallback.
var Supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(Supported)

// Localizer renders keys in one language.
type Localizer struct {
	tag     language.Tag
	catalog map[string]string
}

// New returns a Localizer for the best supported match of the given
// language preferences, for example "ja-JP" or "en". Unparseable input
// selects English.
func New(prefs ...string) *Localizer {
	var tags []language.Tag
	for _, p := range prefs {
		if t, err := language.Parse(normalize(p)); err == nil {
			tags = append(tags, t)
		}
	}
	_, idx, _ := matcher.Match(tags...)
	tag := Supported[idx]
	return &Localizer{tag: tag, catalog: catalogs[tag]}
}

// Language returns the selected language.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// Text returns the message for key with params substituted. Keys missing from
// the selected catalog fall back to English, then to the key itself.
func (l *Localizer) Text(key string, params Params) string {
	msg, ok := l.catalog[key]
	if !ok {
		msg, ok = catalogs[language.English][key]
	}
	if !ok {
		msg = key
	}
	return expand(msg, params)
}

func expand(msg string, params Params) string {
	if len(params) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// normalize turns POSIX locale names such as "ja_JP.UTF-8" into BCP 47.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}

var (
	mu      sync.RWMutex
	current = New()
)

// SetLanguage selects the process-wide language.
func SetLanguage(prefs ...string) {
	l := New(prefs...)
	mu.Lock()
	current = l
	mu.Unlock()
}

// Current returns the process-wide Localizer.
func Current() *Localizer {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Text renders key with the process-wide Localizer.
func Text(key string, params Params) string {
	return Current().Text(key, params)
}

// DetectPreferences returns the language preferences found in the usual
// locale environment variables, most specific first.
func DetectPreferences(getenv func(string) string) []string {
	var prefs []string
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(name); v != "" && v != "C" && v != "POSIX" {
			prefs = append(prefs, v)
		}
	}
	return prefs
}
