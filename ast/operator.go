package ast

// Operator is an arithmetic operator.
type Operator uint

// Operator constants.  Every operator is binary; Sub doubles as unary
// negation.
const (
	Add Operator = iota
	Sub
	Mul
	Div

	numOperators
)

var operatorStrings = [numOperators]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
}

// String returns the one character symbol for op.
func (op Operator) String() string {
	if op >= numOperators {
		return "?"
	}
	return operatorStrings[op]
}

// Operators returns every defined operator.
func Operators() []Operator {
	return []Operator{Add, Sub, Mul, Div}
}

// ParseOperator returns the operator written as sym.
func ParseOperator(sym string) (Operator, bool) {
	for op, s := range operatorStrings {
		if s == sym {
			return Operator(op), true
		}
	}
	return 0, false
}
