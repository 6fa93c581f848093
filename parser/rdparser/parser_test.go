package rdparser

import (
	"strings"
	"testing"

	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/parser/lexer"
	"github.com/luthersystems/lndw/sexpr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_ok(t *testing.T) {
	for i, test := range []struct {
		source string
		expect sexpr.SExpr
	}{
		{"x", sexpr.Sym("x")},
		{"  42 ", sexpr.Sym("42")},
		{"()", sexpr.L()},
		{"(+ 1 2)", sexpr.Syms("+", "1", "2")},
		{"(* (+ 1 2) 3)", sexpr.L(sexpr.Sym("*"), sexpr.Syms("+", "1", "2"), sexpr.Sym("3"))},
		{"(- x)", sexpr.Syms("-", "x")},
		{"((()))", sexpr.L(sexpr.L(sexpr.L()))},
		{"(a\n(b\tc)\n)", sexpr.L(sexpr.Sym("a"), sexpr.Syms("b", "c"))},
	} {
		x, err := NewReader().Read("test", test.source)
		if !assert.NoError(t, err, "test %d: error", i) {
			continue
		}
		assert.True(t, sexpr.Equal(test.expect, x), "test %d: expected %v (got %v)", i, test.expect, x)
	}
}

func TestRead_err(t *testing.T) {
	for i, test := range []struct {
		source string
		msg    string
	}{
		{"", "empty input (s-expr)"},
		{"   ", "empty input (s-expr)"},
		{"(+ 1", "unmatched ( (s-expr)"},
		{"((+ 1 2)", "unmatched ( (s-expr)"},
		{")", "unmatched ) (s-expr)"},
		{"(+ 1 2))", "unmatched ) (s-expr)"},
		{"(+ 1 2) 3", `unexpected symbol "3" following expression (s-expr)`},
		{"a b", `unexpected symbol "b" following expression (s-expr)`},
		{"(a \xff)", "invalid utf-8 sequence in source text starting with byte '\\xff' (s-expr)"},
	} {
		_, err := NewReader().Read("test", test.source)
		if !assert.Error(t, err, "test %d: no error", i) {
			continue
		}
		assert.True(t, lperr.Is(err, lperr.SExpr), "test %d: wrong kind", i)
		assert.Equal(t, test.msg, err.Error(), "test %d: message mismatch", i)
	}
}

func TestRead_location(t *testing.T) {
	_, err := NewReader().Read("input", "(+ 1\n  (* 2")
	require.Error(t, err)
	lerr, ok := err.(*lperr.Error)
	require.True(t, ok)
	assert.Equal(t, "input:2:3: unmatched ( (s-expr)", lerr.Detail())
}

func TestRead_maxDepth(t *testing.T) {
	deep := strings.Repeat("(", 20) + strings.Repeat(")", 20)
	_, err := NewReader(WithMaxDepth(20)).Read("", deep)
	assert.NoError(t, err)
	_, err = NewReader(WithMaxDepth(19)).Read("", deep)
	if assert.Error(t, err) {
		assert.Equal(t, "maximum nesting depth exceeded: 19 (s-expr)", err.Error())
	}
	_, err = NewReader(WithMaxDepth(0)).Read("", strings.Repeat("(", 2000)+strings.Repeat(")", 2000))
	assert.NoError(t, err)
	_, err = NewReader().Read("", strings.Repeat("(", DefaultMaxDepth+1)+strings.Repeat(")", DefaultMaxDepth+1))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	toks, err := lexer.Run("(/ 4 0)")
	require.NoError(t, err)
	x, err := Run(toks)
	require.NoError(t, err)
	assert.Equal(t, "(/ 4 0)", x.String())

	toks, err = lexer.Run("(+ 1")
	require.NoError(t, err)
	_, err = Run(toks)
	assert.True(t, lperr.Is(err, lperr.SExpr))

	_, err = Run(nil)
	if assert.Error(t, err) {
		assert.Equal(t, "empty input (s-expr)", err.Error())
	}
}

// Reading the printed form of a tree must reproduce the tree.
func TestRead_roundTrip(t *testing.T) {
	for i, x := range []sexpr.SExpr{
		sexpr.Sym("abc"),
		sexpr.L(),
		sexpr.L(sexpr.L(), sexpr.Sym("-7"), sexpr.L(sexpr.Syms("x", "y"))),
		sexpr.L(sexpr.Sym("/"), sexpr.Syms("*", "a", "b"), sexpr.Syms("-", "c")),
	} {
		toks, err := lexer.Run(x.String())
		require.NoError(t, err, "test %d", i)
		y, err := Run(toks)
		require.NoError(t, err, "test %d", i)
		assert.True(t, sexpr.Equal(x, y), "test %d: expected %v (got %v)", i, x, y)
	}
}
