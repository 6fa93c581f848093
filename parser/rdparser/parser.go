// Package rdparser is a recursive descent reader for s-expressions.
package rdparser

import (
	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/parser/lexer"
	"github.com/luthersystems/lndw/parser/token"
	"github.com/luthersystems/lndw/sexpr"
)

// DefaultMaxDepth is the list nesting depth allowed when no WithMaxDepth
// option is given.
const DefaultMaxDepth = 512

type reader struct {
	opts []Option
}

// NewReader returns a sexpr.Reader that uses a Parser configured with opts.
func NewReader(opts ...Option) sexpr.Reader {
	return &reader{opts: opts}
}

// Read implements sexpr.Reader.
func (r *reader) Read(name string, text string) (sexpr.SExpr, error) {
	s := token.NewScanner(name, text)
	p := New(lexer.New(s), r.opts...)
	return p.Read()
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth limits the nesting depth of lists.  A non-positive n removes
// the limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// Parser reads a single s-expression from a TokenSource.
type Parser struct {
	src      TokenSource
	curr     *token.Token
	peek     *token.Token
	depth    int
	maxDepth int
}

// New initializes and returns a new Parser that reads tokens from src.
func New(src TokenSource, opts ...Option) *Parser {
	p := &Parser{
		src:      src,
		maxDepth: DefaultMaxDepth,
	}
	for _, fn := range opts {
		fn(p)
	}
	// Setup the peek token so the parser is in the proper state when the first
	// parse function is called.
	p.ReadToken()
	return p
}

// Run reads a single s-expression from toks.
func Run(toks []*token.Token, opts ...Option) (sexpr.SExpr, error) {
	return New(NewSliceSource(toks), opts...).Read()
}

// Read parses one complete s-expression and ensures that no input follows
// it.
func (p *Parser) Read() (sexpr.SExpr, error) {
	if p.PeekType() == token.EOF {
		return nil, p.errorf("empty input")
	}
	x, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	switch p.PeekType() {
	case token.EOF:
		return x, nil
	case token.PAREN_R:
		p.ReadToken()
		return nil, p.errorf("unmatched )")
	case token.ERROR, token.INVALID:
		p.ReadToken()
		return nil, p.errorf("%s", p.Token().Text)
	default:
		p.ReadToken()
		return nil, p.errorf("unexpected %s following expression", p.Token())
	}
}

// ParseExpression parses a symbol or a list.
func (p *Parser) ParseExpression() (sexpr.SExpr, error) {
	switch p.PeekType() {
	case token.SYMBOL:
		p.ReadToken()
		return sexpr.Sym(p.Token().Text), nil
	case token.PAREN_L:
		return p.ParseList()
	case token.PAREN_R:
		p.ReadToken()
		return nil, p.errorf("unmatched )")
	case token.EOF:
		p.ReadToken()
		return nil, p.errorf("unexpected EOF")
	default:
		p.ReadToken()
		return nil, p.errorf("%s", p.Token().Text)
	}
}

// ParseList parses zero or more expressions between matching parentheses.
func (p *Parser) ParseList() (sexpr.SExpr, error) {
	if !p.expect(token.PAREN_L) {
		p.ReadToken()
		return nil, p.errorf("unexpected %s", p.Token())
	}
	open := p.Token()
	p.depth++
	defer func() { p.depth-- }()
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return nil, p.errorf("maximum nesting depth exceeded: %d", p.maxDepth)
	}
	lis := sexpr.List{}
	for {
		if p.PeekType() == token.EOF {
			err := lperr.Errorf(lperr.SExpr, "unmatched %s", open.Text)
			return nil, err.At(open.Source)
		}
		if p.expect(token.PAREN_R) {
			break
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		lis = append(lis, x)
	}
	return lis, nil
}

func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	p.peek = p.src.NextToken()
	return p.curr
}

func (p *Parser) Token() *token.Token {
	return p.curr
}

func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

func (p *Parser) expect(typ token.Type) bool {
	if p.peek.Type == typ {
		p.ReadToken()
		return true
	}
	return false
}

func (p *Parser) errorf(format string, v ...interface{}) *lperr.Error {
	err := lperr.Errorf(lperr.SExpr, format, v...)
	if p.curr != nil {
		return err.At(p.curr.Source)
	}
	if p.peek != nil {
		return err.At(p.peek.Source)
	}
	return err
}
