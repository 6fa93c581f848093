package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	switch tok.Type {
	case SYMBOL, ERROR, INVALID:
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	default:
		return tok.Type.String()
	}
}

type Type uint

// Type constants produced by the lexer.  An s-expression only needs three
// kinds of real tokens; the remaining types signal the end of input or a
// failure to scan.
const (
	INVALID Type = iota
	ERROR
	EOF

	SYMBOL

	// Delimiters
	PAREN_L
	PAREN_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		SYMBOL:  "symbol",
		PAREN_L: "(",
		PAREN_R: ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

type Location struct {
	File string
	Pos  int // byte offset of the first byte
	Line int // line number (starting at 1)
	Col  int // line column number in runes (starting at 1)
}

func (loc *Location) String() string {
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
