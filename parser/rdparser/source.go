package rdparser

import (
	"github.com/luthersystems/lndw/parser/lexer"
	"github.com/luthersystems/lndw/parser/token"
)

// TokenSource produces the tokens consumed by a Parser.  After returning an
// EOF token a TokenSource must continue to return EOF tokens.
type TokenSource interface {
	NextToken() *token.Token
}

var _ TokenSource = (*lexer.Lexer)(nil)

// SliceSource is a TokenSource that replays tokens which have already been
// scanned, such as those returned by lexer.Run.
type SliceSource struct {
	toks []*token.Token
	eof  *token.Location
}

// NewSliceSource returns a TokenSource that produces toks followed by EOF.
func NewSliceSource(toks []*token.Token) *SliceSource {
	s := &SliceSource{toks: toks, eof: &token.Location{}}
	if len(toks) > 0 && toks[len(toks)-1].Source != nil {
		last := *toks[len(toks)-1].Source
		last.Pos += len(toks[len(toks)-1].Text)
		last.Col += len([]rune(toks[len(toks)-1].Text))
		s.eof = &last
	}
	return s
}

// NextToken implements TokenSource.
func (s *SliceSource) NextToken() *token.Token {
	if len(s.toks) == 0 {
		return &token.Token{Type: token.EOF, Source: s.eof}
	}
	tok := s.toks[0]
	s.toks = s.toks[1:]
	return tok
}
