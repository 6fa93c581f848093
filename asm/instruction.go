// Package asm defines the instructions of the abstract register machine.
//
// Arithmetic instructions name two registers, A and B.  The result is always
// written to B and each instruction's sentence form reads literally:
//
//	Add{A, B}  add register A to register B         B = A + B
//	Sub{A, B}  subtract register A from register B  B = B - A
//	Mul{A, B}  multiply register A by register B    B = A * B
//	Div{A, B}  divide register A by register B      B = A / B
package asm

import (
	"fmt"
	"io"

	"github.com/luthersystems/lndw/ast"
	"github.com/luthersystems/lndw/register"
)

// Inst is a machine instruction.  The concrete types Add, Sub, Mul, Div,
// Store, Transfer and Result are the only implementations.
type Inst interface {
	// String returns the instruction as an English sentence.
	String() string
	// Reads returns the registers the instruction reads.
	Reads() []register.Reg
	// Writes returns the register the instruction writes, if any.
	Writes() (register.Reg, bool)

	inst()
}

// Add writes A + B to B.
type Add struct{ A, B register.Reg }

// Sub writes B - A to B.
type Sub struct{ A, B register.Reg }

// Mul writes A * B to B.
type Mul struct{ A, B register.Reg }

// Div writes A / B to B.
type Div struct{ A, B register.Reg }

// Store writes the number N to R.
type Store struct {
	N int32
	R register.Reg
}

// Transfer writes the value bound to variable Var to R.
type Transfer struct {
	Var string
	R   register.Reg
}

// Result marks R as holding the final value of the program.
type Result struct {
	R register.Reg
}

func (i Add) String() string { return fmt.Sprintf("add register %v to register %v", i.A, i.B) }
func (i Sub) String() string { return fmt.Sprintf("subtract register %v from register %v", i.A, i.B) }
func (i Mul) String() string { return fmt.Sprintf("multiply register %v by register %v", i.A, i.B) }
func (i Div) String() string { return fmt.Sprintf("divide register %v by register %v", i.A, i.B) }
func (i Store) String() string {
	return fmt.Sprintf("store the number %d in register %v", i.N, i.R)
}
func (i Transfer) String() string {
	return fmt.Sprintf("transfer variable %s to register %v", i.Var, i.R)
}
func (i Result) String() string { return fmt.Sprintf("the result is in register %v", i.R) }

func (i Add) Reads() []register.Reg      { return []register.Reg{i.A, i.B} }
func (i Sub) Reads() []register.Reg      { return []register.Reg{i.A, i.B} }
func (i Mul) Reads() []register.Reg      { return []register.Reg{i.A, i.B} }
func (i Div) Reads() []register.Reg      { return []register.Reg{i.A, i.B} }
func (i Store) Reads() []register.Reg    { return nil }
func (i Transfer) Reads() []register.Reg { return nil }
func (i Result) Reads() []register.Reg   { return []register.Reg{i.R} }

func (i Add) Writes() (register.Reg, bool)      { return i.B, true }
func (i Sub) Writes() (register.Reg, bool)      { return i.B, true }
func (i Mul) Writes() (register.Reg, bool)      { return i.B, true }
func (i Div) Writes() (register.Reg, bool)      { return i.B, true }
func (i Store) Writes() (register.Reg, bool)    { return i.R, true }
func (i Transfer) Writes() (register.Reg, bool) { return i.R, true }
func (i Result) Writes() (register.Reg, bool)   { return 0, false }

func (Add) inst()      {}
func (Sub) inst()      {}
func (Mul) inst()      {}
func (Div) inst()      {}
func (Store) inst()    {}
func (Transfer) inst() {}
func (Result) inst()   {}

// Arith returns the arithmetic instruction for op operating on registers a
// and b.
func Arith(op ast.Operator, a, b register.Reg) (Inst, error) {
	switch op {
	case ast.Add:
		return Add{a, b}, nil
	case ast.Sub:
		return Sub{a, b}, nil
	case ast.Mul:
		return Mul{a, b}, nil
	case ast.Div:
		return Div{a, b}, nil
	default:
		return nil, fmt.Errorf("no instruction for operator: %v", op)
	}
}

// FormatProgram renders p as one sentence per line.  Each line is prefixed
// with the string indent.
func FormatProgram(w io.Writer, p []Inst, indent string) (int, error) {
	total := 0
	for i, inst := range p {
		n, err := fmt.Fprintf(w, "%s%v\n", indent, inst)
		total += n
		if err != nil {
			return total, fmt.Errorf("inst %d: %w", i, err)
		}
	}
	return total, nil
}
