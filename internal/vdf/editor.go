package vdf

import (
	"errors"
	"strings"
)

var (
	// ErrBlockNotFound indicates the outer block does not exist.
	ErrBlockNotFound = errors.New("vdf: block not found")

	// ErrNotString indicates the inner key holds a block instead of a string.
	ErrNotString = errors.New("vdf: value is not a string")
)

// Result is the outcome of Upsert.
type Result struct {
	// Content is the edited buffer.
	Content string
	// Previous is the unescaped value the key held before the edit.
	// It is empty when the key was inserted.
	Previous string
	// Existed reports whether the key was already present.
	Existed bool
}

var (
	escaper   = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)
)

// EscapeValue escapes backslashes and then double quotes so raw can be
// placed between quotes.
func EscapeValue(raw string) string {
	return escaper.Replace(raw)
}

// UnescapeValue reverses EscapeValue. Other escape sequences are kept as is.
func UnescapeValue(escaped string) string {
	return unescaper.Replace(escaped)
}

// valueSpan returns the offsets of the quotes around innerKey's value inside
// the block of outerKey.
func valueSpan(buf, outerKey, innerKey string) (blockEnd, vs, ve int, found bool, err error) {
	start, end, ok := FindBlock(buf, outerKey)
	if !ok {
		return 0, 0, 0, false, ErrBlockNotFound
	}
	key, ok := findKey(buf, start, end, innerKey)
	if !ok {
		return end, 0, 0, false, nil
	}
	from := key.end + 1
	s, e, ok := FindQuotedValue(buf[from:end])
	if !ok {
		return end, 0, 0, false, ErrNotString
	}
	return end, from + s, from + e, true, nil
}

// Lookup returns the unescaped value of innerKey inside the block of
// outerKey.
func Lookup(buf, outerKey, innerKey string) (string, bool) {
	_, vs, ve, found, err := valueSpan(buf, outerKey, innerKey)
	if err != nil || !found {
		return "", false
	}
	return UnescapeValue(buf[vs+1 : ve]), true
}

// Upsert sets innerKey to value inside the block of outerKey. An existing
// value has only its quoted span replaced. A missing key is inserted on its
// own line just before the block's closing brace, one tab deeper than the
// brace.
func Upsert(buf, outerKey, innerKey, value string) (Result, error) {
	blockEnd, vs, ve, found, err := valueSpan(buf, outerKey, innerKey)
	if err != nil {
		return Result{}, err
	}
	quoted := `"` + EscapeValue(value) + `"`

	if found {
		return Result{
			Content:  buf[:vs] + quoted + buf[ve+1:],
			Previous: UnescapeValue(buf[vs+1 : ve]),
			Existed:  true,
		}, nil
	}

	indent := closingIndent(buf, blockEnd)
	line := "\t\"" + EscapeValue(innerKey) + "\"\t\t" + quoted + "\n" + indent
	return Result{Content: buf[:blockEnd] + line + buf[blockEnd:]}, nil
}

// closingIndent returns the whitespace preceding the closing brace at pos
// when the brace starts its own line.
func closingIndent(buf string, pos int) string {
	i := pos
	for i > 0 && (buf[i-1] == '\t' || buf[i-1] == ' ') {
		i--
	}
	if i == 0 || buf[i-1] == '\n' {
		return buf[i:pos]
	}
	return ""
}
