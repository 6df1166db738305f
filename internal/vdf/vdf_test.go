package vdf

import (
	"errors"
	"strings"
	"testing"
)

const localConfig = "\"UserLocalConfigStore\"\n" +
	"{\n" +
	"\t\"Software\"\n" +
	"\t{\n" +
	"\t\t\"Valve\"\n" +
	"\t\t{\n" +
	"\t\t\t\"Steam\"\n" +
	"\t\t\t{\n" +
	"\t\t\t\t\"apps\"\n" +
	"\t\t\t\t{\n" +
	"\t\t\t\t\t\"3224770\"\n" +
	"\t\t\t\t\t{\n" +
	"\t\t\t\t\t\t\"LastPlayed\"\t\t\"1700000000\"\n" +
	"\t\t\t\t\t}\n" +
	"\t\t\t\t\t\"3564400\"\n" +
	"\t\t\t\t\t{\n" +
	"\t\t\t\t\t\t\"LastPlayed\"\t\t\"1700000001\"\n" +
	"\t\t\t\t\t\t\"cloud\"\n" +
	"\t\t\t\t\t\t{\n" +
	"\t\t\t\t\t\t\t\"LaunchOptions\"\t\t\"nested, not ours\"\n" +
	"\t\t\t\t\t\t}\n" +
	"\t\t\t\t\t\t\"LaunchOptions\"\t\t\"%command%\"\n" +
	"\t\t\t\t\t}\n" +
	"\t\t\t\t}\n" +
	"\t\t\t}\n" +
	"\t\t}\n" +
	"\t}\n" +
	"}\n"

func TestFindBlockNested(t *testing.T) {
	t.Parallel()

	start, end, ok := FindBlock(localConfig, "3564400")
	if !ok {
		t.Fatal("FindBlock: block not found")
	}
	if localConfig[start-1] != '{' || localConfig[end] != '}' {
		t.Fatalf("FindBlock: range not bounded by braces: %q...%q", localConfig[start-1], localConfig[end])
	}
	inner := localConfig[start:end]
	if !strings.Contains(inner, "1700000001") || strings.Contains(inner, "1700000000") {
		t.Errorf("FindBlock returned the wrong block: %q", inner)
	}
	if !strings.HasSuffix(inner, "\"%command%\"\n\t\t\t\t\t") {
		t.Errorf("FindBlock did not stop at the matching brace: %q", inner)
	}
}

func TestFindBlockNotFound(t *testing.T) {
	t.Parallel()

	if _, _, ok := FindBlock(localConfig, "9999999"); ok {
		t.Error("FindBlock: expected not found")
	}
	if _, _, ok := FindBlock("", "3564400"); ok {
		t.Error("FindBlock on empty buffer: expected not found")
	}
	// A string value with the same text is not a block.
	if _, _, ok := FindBlock("\"k\"\t\t\"3564400\"\n", "3564400"); ok {
		t.Error("FindBlock matched a value instead of a block")
	}
	// Unbalanced braces never produce a range.
	if _, _, ok := FindBlock("\"3564400\"\n{\n\t\"a\"\t\t\"b\"\n", "3564400"); ok {
		t.Error("FindBlock matched an unterminated block")
	}
}

func TestFindBlockIgnoresBracesInStrings(t *testing.T) {
	t.Parallel()

	buf := "\"app\"\n{\n\t\"LaunchOptions\"\t\t\"echo } { \\\"}\\\"\"\n\t\"after\"\t\t\"1\"\n}\n\"tail\"\t\t\"x\"\n"
	start, end, ok := FindBlock(buf, "app")
	if !ok {
		t.Fatal("FindBlock: not found")
	}
	if !strings.Contains(buf[start:end], "\"after\"") {
		t.Errorf("brace inside a string terminated the block early: %q", buf[start:end])
	}
}

func TestFindQuotedValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		start  int
		end    int
		wantOK bool
	}{
		{name: "plain", in: `"abc"`, start: 0, end: 4, wantOK: true},
		{name: "leading whitespace", in: "\t\t \"abc\" rest", start: 3, end: 7, wantOK: true},
		{name: "escaped quote", in: `"a\"b"`, start: 0, end: 5, wantOK: true},
		{name: "escaped backslash before close", in: `"a\\" "x"`, start: 0, end: 4, wantOK: true},
		{name: "empty string", in: `""`, start: 0, end: 1, wantOK: true},
		{name: "unterminated", in: `"abc`, wantOK: false},
		{name: "unterminated after escape", in: `"abc\"`, wantOK: false},
		{name: "not a quote", in: "  {", wantOK: false},
		{name: "empty input", in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			start, end, ok := FindQuotedValue(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("FindQuotedValue(%q) ok: got %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && (start != tt.start || end != tt.end) {
				t.Errorf("FindQuotedValue(%q): got (%d, %d), want (%d, %d)", tt.in, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestEscapeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{`%command%`, `%command%`},
		{`"C:\Games\hachimi_launcher.exe" %command%`, `\"C:\\Games\\hachimi_launcher.exe\" %command%`},
		{`\"`, `\\\"`},
		{``, ``},
	}
	for _, tt := range tests {
		if got := EscapeValue(tt.raw); got != tt.want {
			t.Errorf("EscapeValue(%q): got %q, want %q", tt.raw, got, tt.want)
		}
		if got := UnescapeValue(tt.want); got != tt.raw {
			t.Errorf("UnescapeValue(%q): got %q, want %q", tt.want, got, tt.raw)
		}
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	got, ok := Lookup(localConfig, "3564400", "LaunchOptions")
	if !ok || got != "%command%" {
		t.Errorf("Lookup: got %q, %v; want %%command%%", got, ok)
	}
	if _, ok := Lookup(localConfig, "3224770", "LaunchOptions"); ok {
		t.Error("Lookup in block without the key: expected not found")
	}
	if _, ok := Lookup(localConfig, "missing", "LaunchOptions"); ok {
		t.Error("Lookup in missing block: expected not found")
	}
}

func TestUpsertReplacesOnlyValueSpan(t *testing.T) {
	t.Parallel()

	newValue := `"C:\Games\hachimi_launcher.exe" %command%`
	res, err := Upsert(localConfig, "3564400", "LaunchOptions", newValue)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !res.Existed {
		t.Error("Upsert: expected Existed")
	}
	if res.Previous != "%command%" {
		t.Errorf("Upsert previous: got %q, want %%command%%", res.Previous)
	}

	want := strings.Replace(localConfig, `"LaunchOptions"`+"\t\t"+`"%command%"`,
		`"LaunchOptions"`+"\t\t"+`"\"C:\\Games\\hachimi_launcher.exe\" %command%"`, 1)
	if res.Content != want {
		t.Errorf("Upsert changed bytes outside the value span:\n got: %q\nwant: %q", res.Content, want)
	}
	if !strings.Contains(res.Content, "\"nested, not ours\"") {
		t.Error("nested LaunchOptions must be untouched")
	}

	got, ok := Lookup(res.Content, "3564400", "LaunchOptions")
	if !ok || got != newValue {
		t.Errorf("Lookup after Upsert: got %q", got)
	}
}

func TestUpsertInsertsMissingKey(t *testing.T) {
	t.Parallel()

	res, err := Upsert(localConfig, "3224770", "LaunchOptions", "X %command%")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if res.Existed || res.Previous != "" {
		t.Errorf("Upsert insert: got Existed=%v Previous=%q", res.Existed, res.Previous)
	}
	wantBlock := "\t\t\t\t\t\"3224770\"\n" +
		"\t\t\t\t\t{\n" +
		"\t\t\t\t\t\t\"LastPlayed\"\t\t\"1700000000\"\n" +
		"\t\t\t\t\t\t\"LaunchOptions\"\t\t\"X %command%\"\n" +
		"\t\t\t\t\t}\n"
	if !strings.Contains(res.Content, wantBlock) {
		t.Errorf("inserted line not formatted as expected:\n%s", res.Content)
	}
	if len(res.Content) != len(localConfig)+len("\t\t\t\t\t\t\"LaunchOptions\"\t\t\"X %command%\"\n") {
		t.Error("insert added unexpected bytes")
	}
}

func TestUpsertRoundTrip(t *testing.T) {
	t.Parallel()

	first, err := Upsert(localConfig, "3564400", "LaunchOptions", "v1 %command%")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Upsert(first.Content, "3564400", "LaunchOptions", "v2 \"quoted\" %command%")
	if err != nil {
		t.Fatal(err)
	}
	if second.Previous != "v1 %command%" {
		t.Errorf("second previous: got %q", second.Previous)
	}
	restored, err := Upsert(second.Content, "3564400", "LaunchOptions", first.Previous)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Content != localConfig {
		t.Errorf("round trip did not restore the original buffer:\n%s", restored.Content)
	}
}

func TestUpsertErrors(t *testing.T) {
	t.Parallel()

	if _, err := Upsert(localConfig, "0", "LaunchOptions", "x"); !errors.Is(err, ErrBlockNotFound) {
		t.Errorf("missing block: got %v, want ErrBlockNotFound", err)
	}
	if _, err := Upsert("", "3564400", "LaunchOptions", "x"); !errors.Is(err, ErrBlockNotFound) {
		t.Errorf("empty buffer: got %v, want ErrBlockNotFound", err)
	}
	if _, err := Upsert(localConfig, "3564400", "cloud", "x"); !errors.Is(err, ErrNotString) {
		t.Errorf("block-valued key: got %v, want ErrNotString", err)
	}
}
