// Package ast defines the typed arithmetic expression tree and builds it from
// s-expressions.
package ast

import (
	"sort"
	"strconv"

	"github.com/luthersystems/lndw/sexpr"
)

// Expr is an arithmetic expression.  The concrete types Num, Var, UnaryOp and
// BinaryOp are the only implementations.
type Expr interface {
	// SExpr returns the s-expression form of the expression.
	SExpr() sexpr.SExpr
	String() string

	expr()
}

// Num is an integer literal.
type Num struct {
	Value int32
}

// Var is a reference to a variable bound in an evaluation environment.
type Var struct {
	Name string
}

// UnaryOp applies Op to a single operand.  Only Sub (negation) is valid.
type UnaryOp struct {
	Op Operator
	X  Expr
}

// BinaryOp applies Op to L and R, in that order.
type BinaryOp struct {
	L  Expr
	Op Operator
	R  Expr
}

var (
	_ Expr = Num{}
	_ Expr = Var{}
	_ Expr = UnaryOp{}
	_ Expr = BinaryOp{}
)

// SExpr implements Expr.
func (x Num) SExpr() sexpr.SExpr { return sexpr.Sym(strconv.FormatInt(int64(x.Value), 10)) }

// SExpr implements Expr.
func (x Var) SExpr() sexpr.SExpr { return sexpr.Sym(x.Name) }

// SExpr implements Expr.
func (x UnaryOp) SExpr() sexpr.SExpr {
	return sexpr.L(sexpr.Sym(x.Op.String()), x.X.SExpr())
}

// SExpr implements Expr.
func (x BinaryOp) SExpr() sexpr.SExpr {
	return sexpr.L(sexpr.Sym(x.Op.String()), x.L.SExpr(), x.R.SExpr())
}

func (x Num) String() string      { return x.SExpr().String() }
func (x Var) String() string      { return x.SExpr().String() }
func (x UnaryOp) String() string  { return x.SExpr().String() }
func (x BinaryOp) String() string { return x.SExpr().String() }

func (Num) expr()      {}
func (Var) expr()      {}
func (UnaryOp) expr()  {}
func (BinaryOp) expr() {}

// Neg returns the negation of x.
func Neg(x Expr) Expr {
	return UnaryOp{Op: Sub, X: x}
}

// Binary returns the application of op to l and r.
func Binary(l Expr, op Operator, r Expr) Expr {
	return BinaryOp{L: l, Op: op, R: r}
}

// FreeVars returns the sorted names of variables referenced in x.
func FreeVars(x Expr) []string {
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(x Expr) {
		switch x := x.(type) {
		case Var:
			seen[x.Name] = true
		case UnaryOp:
			walk(x.X)
		case BinaryOp:
			walk(x.L)
			walk(x.R)
		}
	}
	walk(x)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the number of nodes in x.
func Size(x Expr) int {
	switch x := x.(type) {
	case UnaryOp:
		return 1 + Size(x.X)
	case BinaryOp:
		return 1 + Size(x.L) + Size(x.R)
	default:
		return 1
	}
}
