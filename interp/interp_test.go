package interp

import (
	"math"
	"testing"

	"github.com/luthersystems/lndw/ast"
	"github.com/luthersystems/lndw/env"
	"github.com/luthersystems/lndw/lperr"
	"github.com/stretchr/testify/assert"
)

func TestEval_ok(t *testing.T) {
	for i, test := range []struct {
		expr   ast.Expr
		env    env.Env
		result int32
	}{
		{ast.Num{Value: 3}, nil, 3},
		{ast.Var{Name: "x"}, env.Env{"x": -4}, -4},
		{ast.Neg(ast.Var{Name: "x"}), env.Env{"x": 5}, -5},
		{ast.Binary(ast.Num{Value: 1}, ast.Add, ast.Num{Value: 2}), nil, 3},
		{ast.Binary(ast.Num{Value: 10}, ast.Sub, ast.Num{Value: 4}), nil, 6},
		{ast.Binary(ast.Num{Value: 7}, ast.Div, ast.Num{Value: 2}), nil, 3},
		{ast.Binary(ast.Num{Value: -7}, ast.Div, ast.Num{Value: 2}), nil, -3},
		{
			ast.Binary(ast.Binary(ast.Num{Value: 2}, ast.Add, ast.Num{Value: 3}), ast.Mul, ast.Var{Name: "y"}),
			env.Env{"y": 4},
			20,
		},
		{ast.Binary(ast.Num{Value: math.MaxInt32}, ast.Add, ast.Num{Value: 1}), nil, math.MinInt32},
		{ast.Neg(ast.Num{Value: math.MinInt32}), nil, math.MinInt32},
		{ast.Binary(ast.Num{Value: math.MinInt32}, ast.Div, ast.Num{Value: -1}), nil, math.MinInt32},
	} {
		v, err := Eval(test.expr, test.env)
		if assert.NoError(t, err, "test %d: eval failed", i) {
			assert.Equal(t, test.result, v, "test %d: unexpected result", i)
		}
	}
}

func TestEval_err(t *testing.T) {
	for i, test := range []struct {
		expr   ast.Expr
		env    env.Env
		errmsg string
	}{
		{ast.Var{Name: "x"}, nil, "unbound variable: x (interpreter)"},
		{ast.Binary(ast.Num{Value: 1}, ast.Div, ast.Num{Value: 0}), nil, "integer division by zero (interpreter)"},
		{
			ast.Binary(ast.Var{Name: "a"}, ast.Div, ast.Binary(ast.Var{Name: "b"}, ast.Sub, ast.Var{Name: "b"})),
			env.Env{"a": 1, "b": 9},
			"integer division by zero (interpreter)",
		},
		// the leftmost failure is reported
		{ast.Binary(ast.Var{Name: "p"}, ast.Add, ast.Var{Name: "q"}), nil, "unbound variable: p (interpreter)"},
	} {
		_, err := Eval(test.expr, test.env)
		if assert.Error(t, err, "test %d: expected error", i) {
			assert.Equal(t, test.errmsg, err.Error(), "test %d: unexpected error", i)
			assert.True(t, lperr.Is(err, lperr.Interpret), "test %d: expected interpreter error", i)
		}
	}
}
