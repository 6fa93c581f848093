package asm

import (
	"strings"
	"testing"

	"github.com/luthersystems/lndw/ast"
	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/parser/rdparser"
	"github.com/luthersystems/lndw/register"
	"github.com/luthersystems/lndw/sexpr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInst_String(t *testing.T) {
	for i, test := range []struct {
		inst   Inst
		expect string
	}{
		{Add{'a', 'b'}, "add register a to register b"},
		{Sub{'a', 'b'}, "subtract register a from register b"},
		{Mul{'a', 'b'}, "multiply register a by register b"},
		{Div{'a', 'b'}, "divide register a by register b"},
		{Store{5, 'a'}, "store the number 5 in register a"},
		{Store{-12, 'Z'}, "store the number -12 in register Z"},
		{Transfer{"x", 'a'}, "transfer variable x to register a"},
		{Result{'c'}, "the result is in register c"},
	} {
		assert.Equal(t, test.expect, test.inst.String(), "test %d: sentence mismatch", i)
	}
}

func TestArith(t *testing.T) {
	for _, op := range ast.Operators() {
		inst, err := Arith(op, 'a', 'b')
		require.NoError(t, err)
		assert.Equal(t, []register.Reg{'a', 'b'}, inst.Reads())
		r, ok := inst.Writes()
		assert.True(t, ok)
		assert.Equal(t, register.Reg('b'), r)
	}
	_, err := Arith(ast.Operator(9), 'a', 'b')
	assert.Error(t, err)
}

func TestFormatProgram(t *testing.T) {
	p := []Inst{Store{1, 'a'}, Store{2, 'b'}, Add{'a', 'b'}, Result{'b'}}
	w := &strings.Builder{}
	n, err := FormatProgram(w, p, "  ")
	require.NoError(t, err)
	expect := "" +
		"  store the number 1 in register a\n" +
		"  store the number 2 in register b\n" +
		"  add register a to register b\n" +
		"  the result is in register b\n"
	assert.Equal(t, expect, w.String())
	assert.Equal(t, len(expect), n)
}

func TestProgram_encode(t *testing.T) {
	p := []Inst{
		Transfer{"x", 'a'},
		Store{-3, 'b'},
		Sub{'b', 'a'},
		Mul{'a', 'b'},
		Div{'b', 'a'},
		Add{'a', 'b'},
		Result{'b'},
	}
	text := EncodeProgram(p).String()
	assert.Equal(t, "((transfer x a) (store -3 b) (sub b a) (mul a b) (div b a) (add a b) (result b))", text)
	v, err := rdparser.NewReader().Read("", text)
	require.NoError(t, err)
	q, err := ParseProgram(v)
	require.NoError(t, err)
	assert.Equal(t, p, q)
}

func TestParseProgram_err(t *testing.T) {
	for i, source := range []string{
		"store",
		"(store)",
		"((store 1))",
		"((store x a))",
		"((store 1 ab))",
		"((store 99999999999 a))",
		"((add a))",
		"((add a (b)))",
		"((transfer (x) a))",
		"((result))",
		"((result a b))",
		"((jump a))",
		"(((add) a b))",
		"(())",
	} {
		v, err := rdparser.NewReader().Read("", source)
		require.NoError(t, err, "test %d", i)
		_, err = ParseProgram(v)
		if assert.Error(t, err, "test %d: no error", i) {
			assert.True(t, lperr.Is(err, lperr.Parse), "test %d: wrong kind: %v", i, err)
		}
	}
	_, err := ParseProgram(sexpr.Sym("x"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]Inst{Store{1, 'a'}, Store{2, 'b'}, Add{'a', 'b'}, Result{'b'}}))
	assert.NoError(t, Validate([]Inst{Transfer{"x", 'a'}, Result{'a'}}))
	for i, p := range [][]Inst{
		nil,
		{Store{1, 'a'}},
		{Store{1, 'a'}, Add{'a', 'b'}, Result{'b'}},
		{Result{'a'}},
		{Store{1, 'a'}, Result{'a'}, Result{'a'}},
	} {
		assert.Error(t, Validate(p), "test %d: no error", i)
	}
}
