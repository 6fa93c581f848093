// Package lexer splits s-expression text into tokens.
//
// Whitespace separates tokens and is otherwise discarded.  Each parenthesis
// is a token of its own and any maximal run of other characters is a symbol,
// so numeric literals are symbols at this stage.
package lexer

import (
	"io"
	"unicode"

	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/parser/token"
)

// Lexer produces a finite stream of tokens from a token.Scanner.  Once
// NextToken has returned an EOF or ERROR token every further call returns EOF.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune
	done    bool
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{
		scanner: s,
	}
}

// NextToken scans and returns the next token in the input.
func (lex *Lexer) NextToken() *token.Token {
	if lex.done {
		return lex.emit(token.EOF, "")
	}
	err := lex.skipWhitespace()
	if err != nil {
		return lex.emitError(err)
	}
	err = lex.readChar()
	if err != nil {
		return lex.emitError(err)
	}
	switch lex.ch {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	default:
		lex.readSymbol()
		return lex.scanner.EmitToken(token.SYMBOL)
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error) *token.Token {
	lex.done = true
	if err == io.EOF {
		return lex.emit(token.EOF, "")
	}
	return lex.emit(token.ERROR, err.Error())
}

// readSymbol consumes symbol runes until a delimiter.  Scan errors are left
// for the next call to NextToken to report.
func (lex *Lexer) readSymbol() {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || isDelim(c) {
			return
		}
		if lex.readChar() != nil {
			return
		}
	}
}

func (lex *Lexer) skipWhitespace() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !unicode.IsSpace(c) {
			break
		}
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) readChar() error {
	err := lex.scanner.ScanRune()
	if err != nil {
		return err
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isDelim(c rune) bool {
	return c == '(' || c == ')' || unicode.IsSpace(c)
}

// Run scans all of text and returns its tokens, not including the final EOF.
// Run fails with an lperr.SExpr error if any part of text cannot be scanned.
func Run(text string) ([]*token.Token, error) {
	return RunFile("", text)
}

// RunFile is like Run but tags token locations with a file name.
func RunFile(file string, text string) ([]*token.Token, error) {
	lex := New(token.NewScanner(file, text))
	var toks []*token.Token
	for {
		tok := lex.NextToken()
		switch tok.Type {
		case token.EOF:
			return toks, nil
		case token.ERROR, token.INVALID:
			return nil, lperr.Errorf(lperr.SExpr, "%s", tok.Text).At(tok.Source)
		}
		toks = append(toks, tok)
	}
}
