// Package langop implements the integer arithmetic shared by the tree
// interpreter and the register machine.
//
// Values are 32-bit two's complement integers.  Addition, subtraction and
// multiplication wrap on overflow.  Division truncates toward zero and the
// quotient of math.MinInt32 by -1 wraps to math.MinInt32.  Division by zero
// is the only failing operation.
package langop

import (
	"errors"
	"fmt"

	"github.com/luthersystems/lndw/ast"
)

// ErrDivideByZero is returned by Div when the divisor is zero.
var ErrDivideByZero = errors.New("integer division by zero")

// Func is a binary integer operator.
type Func func(x1, x2 int32) (int32, error)

// Add computes the sum x1 + x2.
func Add(x1, x2 int32) (int32, error) {
	return x1 + x2, nil
}

// Sub computes the difference x1 - x2.
func Sub(x1, x2 int32) (int32, error) {
	return x1 - x2, nil
}

// Mul computes the product x1 * x2.
func Mul(x1, x2 int32) (int32, error) {
	return x1 * x2, nil
}

// Div returns the quotient x1 / x2.
func Div(x1, x2 int32) (int32, error) {
	if x2 == 0 {
		return 0, ErrDivideByZero
	}
	return x1 / x2, nil
}

// Neg returns -x.
func Neg(x int32) (int32, error) {
	return Sub(0, x)
}

// Lookup returns the Func implementing op.
func Lookup(op ast.Operator) (Func, error) {
	switch op {
	case ast.Add:
		return Add, nil
	case ast.Sub:
		return Sub, nil
	case ast.Mul:
		return Mul, nil
	case ast.Div:
		return Div, nil
	default:
		return nil, fmt.Errorf("unknown operator: %v", op)
	}
}

// Apply computes x1 op x2.
func Apply(op ast.Operator, x1, x2 int32) (int32, error) {
	fn, err := Lookup(op)
	if err != nil {
		return 0, err
	}
	return fn(x1, x2)
}
