/*
Package parser provides an s-expression reader built from parser combinators.

	expr   := '(' <expr>* ')' | <symbol>
	symbol := /[^[:space:]()]+/

The reader produces the same trees as package rdparser and is useful for
cross-checking it.  It does not track line numbers; errors report the byte
offset at which parsing stopped.
*/
package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/parser/token"
	"github.com/luthersystems/lndw/sexpr"
	parsec "github.com/prataprc/goparsec"
)

// DefaultMaxDepth is the list nesting depth allowed by NewReader.
const DefaultMaxDepth = 512

type reader struct {
	maxDepth int
}

// NewReader returns a sexpr.Reader backed by goparsec.
func NewReader() sexpr.Reader {
	return &reader{maxDepth: DefaultMaxDepth}
}

// NewReaderDepth is like NewReader but limits list nesting to maxDepth.  A
// non-positive maxDepth removes the limit.
func NewReaderDepth(maxDepth int) sexpr.Reader {
	return &reader{maxDepth: maxDepth}
}

// Parse reads a single s-expression from text.
func Parse(text string) (sexpr.SExpr, error) {
	return NewReader().Read("", text)
}

// Read implements sexpr.Reader.
func (r *reader) Read(name string, text string) (sexpr.SExpr, error) {
	if !utf8.ValidString(text) {
		return nil, r.errorf(name, invalidUTF8Offset(text), "invalid utf-8 sequence in source text")
	}
	if r.maxDepth > 0 {
		depth, pos := maxNesting(text)
		if depth > r.maxDepth {
			return nil, r.errorf(name, pos, "maximum nesting depth exceeded: %d", r.maxDepth)
		}
	}
	s := parsec.NewScanner([]byte(text))
	root, s := newParsecParser()(s)
	_, s = s.SkipWS()
	if root == nil {
		if s.Endof() {
			return nil, r.errorf(name, s.GetCursor(), "empty input")
		}
		return nil, r.errorf(name, s.GetCursor(), "unbalanced parentheses")
	}
	if !s.Endof() {
		return nil, r.errorf(name, s.GetCursor(), "unexpected input following expression")
	}
	x, ok := getSExpr(root)
	if !ok {
		return nil, r.errorf(name, 0, "unexpected parse tree: %T", root)
	}
	return x, nil
}

func (r *reader) errorf(name string, pos int, format string, v ...interface{}) error {
	err := lperr.Errorf(lperr.SExpr, format, v...)
	return err.At(&token.Location{File: name, Pos: pos})
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	symbol := parsec.Token(`[^\s()]+`, "SYMBOL")
	term := parsec.OrdChoice(symNode, symbol)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(listNode, openP, exprList, closeP)
	expr = parsec.OrdChoice(nil, term, list)
	return expr
}

func symNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	term, ok := nodes[0].(*parsec.Terminal)
	if !ok {
		panic(fmt.Sprintf("unexpected symbol node: %T", nodes[0]))
	}
	return sexpr.Sym(term.GetValue())
}

func listNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	lis := sexpr.List{}
	// The terminal nodes '(' and ')' are dropped.
	for _, c := range cleanParsecNodeList(nodes) {
		if x, ok := c.(sexpr.SExpr); ok {
			lis = append(lis, x)
		}
	}
	return lis
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func getSExpr(root parsec.ParsecNode) (sexpr.SExpr, bool) {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) != 1 {
		return nil, false
	}
	x, ok := nodes[0].(sexpr.SExpr)
	return x, ok
}

// maxNesting returns the deepest parenthesis nesting in text and the byte
// offset at which it was first reached.
func maxNesting(text string) (int, int) {
	depth, max, pos := 0, 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
			if depth > max {
				max, pos = depth, i
			}
		case ')':
			depth--
		}
	}
	return max, pos
}

func invalidUTF8Offset(text string) int {
	for i := 0; i < len(text); {
		c, n := utf8.DecodeRuneInString(text[i:])
		if c == utf8.RuneError && n == 1 {
			return i
		}
		i += n
	}
	return len(text)
}
