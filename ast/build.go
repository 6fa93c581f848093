package ast

import (
	"errors"
	"strconv"

	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/sexpr"
)

// Build interprets x under the prefix arithmetic grammar.
//
//	expr := <integer> | <symbol> | '(' '-' expr ')' | '(' op expr expr ')'
//	op   := '+' | '-' | '*' | '/'
//
// Integers are base-10 and must fit in 32 bits; every other symbol is a
// variable name.  Any other list shape is an lperr.IR error.  Build stops at
// the first error and never returns a partial tree.
func Build(x sexpr.SExpr) (Expr, error) {
	switch x := x.(type) {
	case sexpr.Sym:
		return buildSym(x)
	case sexpr.List:
		return buildList(x)
	default:
		return nil, lperr.Errorf(lperr.IR, "invalid expression: %T", x)
	}
}

func buildSym(sym sexpr.Sym) (Expr, error) {
	n, err := strconv.ParseInt(string(sym), 10, 32)
	if err == nil {
		return Num{Value: int32(n)}, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil, lperr.Errorf(lperr.IR, "integer literal out of range: %s", sym)
	}
	return Var{Name: string(sym)}, nil
}

func buildList(lis sexpr.List) (Expr, error) {
	if len(lis) == 0 {
		return nil, lperr.Errorf(lperr.IR, "invalid expression: empty list")
	}
	opsym, ok := lis[0].(sexpr.Sym)
	if !ok {
		return nil, lperr.Errorf(lperr.IR, "invalid expression: operator is not a symbol: %v", lis)
	}
	switch len(lis) {
	case 2:
		op, ok := ParseOperator(string(opsym))
		if !ok || op != Sub {
			return nil, lperr.Errorf(lperr.IR, "unsupported unary operator: %s", opsym)
		}
		x, err := Build(lis[1])
		if err != nil {
			return nil, err
		}
		return UnaryOp{Op: op, X: x}, nil
	case 3:
		op, ok := ParseOperator(string(opsym))
		if !ok {
			return nil, lperr.Errorf(lperr.IR, "unsupported operator: %s", opsym)
		}
		l, err := Build(lis[1])
		if err != nil {
			return nil, err
		}
		r, err := Build(lis[2])
		if err != nil {
			return nil, err
		}
		return BinaryOp{L: l, Op: op, R: r}, nil
	default:
		return nil, lperr.Errorf(lperr.IR, "invalid expression: %d operands: %v", len(lis)-1, lis)
	}
}
