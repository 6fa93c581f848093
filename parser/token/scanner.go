package token

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from source text.  It tracks the
// byte offset, line and column of every token it emits.
type Scanner struct {
	file string
	src  string

	start     int // byte offset of the current token
	startLine int
	startCol  int

	next int // byte offset of the rune following c
	line int // line of c
	col  int // column of c
	c    rune
	n    int // width of c in bytes
}

// NewScanner initializes and returns a new Scanner over src.  The file name
// is only used in token locations.
func NewScanner(file string, src string) *Scanner {
	s := &Scanner{
		file: file,
		src:  src,
		line: 1,
	}
	s.Ignore()
	return s
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.line
	s.startCol = s.col + 1
	if s.c == '\n' {
		s.startLine++
		s.startCol = 1
	}
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.
func (s *Scanner) Text() string {
	return s.src[s.start:s.next]
}

// Rune returns the last rune scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned.  Peek returns a false second value
// at the end of input or when the next bytes are not valid utf-8, in which
// case the next call to ScanRune returns an error describing the cause.
func (s *Scanner) Peek() (rune, bool) {
	if s.next >= len(s.src) {
		return 0, false
	}
	c, n := utf8.DecodeRuneInString(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune includes the next rune in the current token.  ScanRune returns
// io.EOF when the input is exhausted.
func (s *Scanner) ScanRune() error {
	if s.next >= len(s.src) {
		return io.EOF
	}
	c, n := utf8.DecodeRuneInString(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		return fmt.Errorf("invalid utf-8 sequence in source text starting with byte %q", s.src[s.next])
	}
	if s.c == '\n' {
		s.line++
		s.col = 0
	}
	s.c = c
	s.n = n
	s.next += n
	s.col++
	return nil
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the last rune scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.next - s.n,
		Line: s.line,
		Col:  s.col,
	}
}
