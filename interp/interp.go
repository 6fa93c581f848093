// Package interp evaluates expression trees directly.
package interp

import (
	"fmt"

	"github.com/luthersystems/lndw/ast"
	"github.com/luthersystems/lndw/env"
	"github.com/luthersystems/lndw/langop"
	"github.com/luthersystems/lndw/lperr"
)

// Eval returns the value of x with variables bound by b.  Errors are
// lperr.Interpret errors.
func Eval(x ast.Expr, b env.Bindings) (int32, error) {
	if b == nil {
		b = env.New()
	}
	v, err := eval(x, b)
	if err != nil {
		return 0, lperr.Wrap(lperr.Interpret, err)
	}
	return v, nil
}

func eval(x ast.Expr, b env.Bindings) (int32, error) {
	switch x := x.(type) {
	case ast.Num:
		return x.Value, nil
	case ast.Var:
		v, ok := b.Lookup(x.Name)
		if !ok {
			return 0, fmt.Errorf("unbound variable: %s", x.Name)
		}
		return v, nil
	case ast.UnaryOp:
		if x.Op != ast.Sub {
			return 0, fmt.Errorf("unsupported unary operator: %v", x.Op)
		}
		v, err := eval(x.X, b)
		if err != nil {
			return 0, err
		}
		return langop.Neg(v)
	case ast.BinaryOp:
		// Left operand first, matching compiled code.
		x1, err := eval(x.L, b)
		if err != nil {
			return 0, err
		}
		x2, err := eval(x.R, b)
		if err != nil {
			return 0, err
		}
		return langop.Apply(x.Op, x1, x2)
	default:
		return 0, fmt.Errorf("unknown expression type: %T", x)
	}
}
