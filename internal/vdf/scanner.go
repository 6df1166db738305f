// Package vdf edits Valve's text KeyValues files in place. It does not build
// a document model: it locates byte ranges with a small scanner and splices
// new text into the original buffer, so every byte outside the edited span
// is preserved.
package vdf

type scanState int

const (
	stateCode scanState = iota
	stateQuoted
	stateEscape
)

type tokenKind int

const (
	tokString tokenKind = iota
	tokOpen
	tokClose
)

// token is a lexical element. For strings start and end are the offsets of
// the opening and closing quotes; for braces both are the brace offset.
// depth is the nesting level the token appears at.
type token struct {
	kind  tokenKind
	start int
	end   int
	depth int
}

// scanner walks buf[pos:limit]. Characters outside strings other than braces
// are skipped, which covers whitespace and unquoted junk alike.
type scanner struct {
	buf      string
	pos      int
	limit    int
	state    scanState
	depth    int
	tokStart int
}

func newScanner(buf string, from, to int) *scanner {
	return &scanner{buf: buf, pos: from, limit: to}
}

// next returns the next token. It returns false at the end of the range or
// when the range ends inside an unterminated string.
func (s *scanner) next() (token, bool) {
	for s.pos < s.limit {
		c := s.buf[s.pos]
		switch s.state {
		case stateCode:
			switch c {
			case '"':
				s.state = stateQuoted
				s.tokStart = s.pos
			case '{':
				s.pos++
				s.depth++
				return token{kind: tokOpen, start: s.pos - 1, end: s.pos - 1, depth: s.depth - 1}, true
			case '}':
				s.pos++
				s.depth--
				return token{kind: tokClose, start: s.pos - 1, end: s.pos - 1, depth: s.depth}, true
			}
		case stateQuoted:
			switch c {
			case '\\':
				s.state = stateEscape
			case '"':
				s.state = stateCode
				s.pos++
				return token{kind: tokString, start: s.tokStart, end: s.pos - 1, depth: s.depth}, true
			}
		case stateEscape:
			s.state = stateQuoted
		}
		s.pos++
	}
	return token{}, false
}

// content returns the raw (still escaped) text between the quotes of a
// string token.
func (s *scanner) content(t token) string {
	return s.buf[t.start+1 : t.end]
}

// FindBlock locates the first block introduced by the quoted key outerKey and
// returns the range strictly inside its braces. Braces inside quoted strings
// do not count towards nesting.
func FindBlock(buf, outerKey string) (start, end int, ok bool) {
	want := EscapeValue(outerKey)
	sc := newScanner(buf, 0, len(buf))

	var prev token
	havePrev := false
	for {
		tok, more := sc.next()
		if !more {
			return 0, 0, false
		}
		if tok.kind == tokOpen && havePrev && prev.kind == tokString && sc.content(prev) == want {
			for {
				t, more := sc.next()
				if !more {
					return 0, 0, false
				}
				if t.kind == tokClose && t.depth == tok.depth {
					return tok.start + 1, t.start, true
				}
			}
		}
		prev, havePrev = tok, true
	}
}

// FindQuotedValue locates a quoted string at the start of s, after optional
// whitespace. It returns the offsets of the opening and closing quotes.
// A backslash escapes exactly one following character. A missing opening
// quote or an unterminated string yields ok == false.
func FindQuotedValue(s string) (start, end int, ok bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != '"' {
		return 0, 0, false
	}
	start = i
	state := stateQuoted
	for i++; i < len(s); i++ {
		switch state {
		case stateQuoted:
			switch s[i] {
			case '\\':
				state = stateEscape
			case '"':
				return start, i, true
			}
		case stateEscape:
			state = stateQuoted
		}
	}
	return 0, 0, false
}

// findKey looks for innerKey among the direct children of the block spanning
// buf[from:to] and returns its string token.
func findKey(buf string, from, to int, innerKey string) (token, bool) {
	want := EscapeValue(innerKey)
	sc := newScanner(buf, from, to)
	expectKey := true
	for {
		tok, more := sc.next()
		if !more {
			return token{}, false
		}
		if tok.depth != 0 {
			continue
		}
		switch tok.kind {
		case tokString:
			if expectKey && sc.content(tok) == want {
				return tok, true
			}
			expectKey = !expectKey
		case tokOpen:
			// A nested block is a value.
			expectKey = false
		case tokClose:
			expectKey = true
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
