// Package sexpr defines the generic tree produced by reading s-expression
// text.  Nodes are either atomic symbols or ordered lists of nodes.
package sexpr

import (
	"io"
	"strings"
)

// SExpr is either a Sym or a List.
type SExpr interface {
	// Format writes the textual form of the expression to w.
	Format(w io.Writer) (int, error)
	String() string

	sexpr()
}

// Sym is an atomic symbol.  Operators, variable names and integer literals
// are all symbols.
type Sym string

// List is an ordered sequence of expressions, written between parentheses.
type List []SExpr

var _ SExpr = Sym("")
var _ SExpr = List(nil)

// Format implements SExpr.
func (s Sym) Format(w io.Writer) (int, error) {
	return io.WriteString(w, string(s))
}

func (s Sym) String() string {
	return string(s)
}

func (s Sym) sexpr() {}

// Format implements SExpr.  Elements are separated by a single space.
func (lis List) Format(w io.Writer) (int, error) {
	total := 0
	n, err := io.WriteString(w, "(")
	total += n
	if err != nil {
		return total, err
	}
	for i, x := range lis {
		if i > 0 {
			n, err = io.WriteString(w, " ")
			total += n
			if err != nil {
				return total, err
			}
		}
		n, err = x.Format(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = io.WriteString(w, ")")
	total += n
	return total, err
}

func (lis List) String() string {
	w := &strings.Builder{}
	lis.Format(w)
	return w.String()
}

func (lis List) sexpr() {}

// L is a convenience constructor for a List.
func L(x ...SExpr) List {
	return List(x)
}

// Syms returns a List of symbols.
func Syms(s ...string) List {
	lis := make(List, len(s))
	for i := range s {
		lis[i] = Sym(s[i])
	}
	return lis
}

// Equal returns true if a and b are structurally identical.
func Equal(a, b SExpr) bool {
	switch a := a.(type) {
	case Sym:
		b, ok := b.(Sym)
		return ok && a == b
	case List:
		b, ok := b.(List)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Depth returns the list nesting depth of x.  A symbol has depth 0.
func Depth(x SExpr) int {
	lis, ok := x.(List)
	if !ok {
		return 0
	}
	max := 0
	for _, c := range lis {
		d := Depth(c)
		if d > max {
			max = d
		}
	}
	return max + 1
}
