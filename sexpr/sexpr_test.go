package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	for i, test := range []struct {
		x      SExpr
		expect string
	}{
		{Sym("abc"), "abc"},
		{L(), "()"},
		{Syms("+", "1", "2"), "(+ 1 2)"},
		{L(Sym("*"), Syms("+", "1", "2"), Sym("3")), "(* (+ 1 2) 3)"},
		{L(L(), L(L())), "(() (()))"},
	} {
		assert.Equal(t, test.expect, test.x.String(), "test %d: string mismatch", i)
	}
}

func TestEqual(t *testing.T) {
	a := L(Sym("-"), Syms("+", "x", "1"))
	b := L(Sym("-"), Syms("+", "x", "1"))
	assert.True(t, Equal(a, b))
	assert.True(t, Equal(Sym("x"), Sym("x")))
	assert.True(t, Equal(L(), List(nil)))
	assert.False(t, Equal(Sym("x"), Sym("y")))
	assert.False(t, Equal(Sym("x"), Syms("x")))
	assert.False(t, Equal(a, L(Sym("-"), Syms("+", "x", "2"))))
	assert.False(t, Equal(a, L(Sym("-"))))
	assert.False(t, Equal(nil, Sym("x")))
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth(Sym("x")))
	assert.Equal(t, 1, Depth(L()))
	assert.Equal(t, 3, Depth(L(Sym("a"), L(L()), Sym("b"))))
}
