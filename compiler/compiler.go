// Package compiler translates arithmetic expressions into register machine
// instructions.
//
// Each literal, variable and negation gets a fresh register from the
// architecture's pool and registers are never reused.  A binary operation
// leaves its value in one of its operands' registers.  Compiling an
// expression which needs more registers than the pool holds fails with "out
// of registers".
package compiler

import (
	"errors"
	"fmt"

	"github.com/luthersystems/lndw/asm"
	"github.com/luthersystems/lndw/ast"
	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/register"
)

// Compiler produces programs for a register architecture.  A Compiler has no
// mutable state and may be used concurrently.
type Compiler struct {
	arch register.Arch
}

// New returns a Compiler that allocates registers from arch.  If arch is nil
// register.DefaultArch is used.
func New(arch register.Arch) *Compiler {
	if arch == nil {
		arch = register.DefaultArch()
	}
	return &Compiler{arch: arch}
}

// Compile compiles x using the default register architecture.
func Compile(x ast.Expr) ([]asm.Inst, error) {
	return New(nil).Compile(x)
}

// Compile returns a program which leaves the value of x in the register named
// by its final Result instruction.  Errors are lperr.Compile errors.
func (c *Compiler) Compile(x ast.Expr) ([]asm.Inst, error) {
	g := &codegen{alloc: register.NewAllocator(c.arch)}
	r, err := g.expr(x)
	if err != nil {
		if errors.Is(err, register.ErrOutOfRegisters) {
			return nil, lperr.Errorf(lperr.Compile, "out of registers: expression needs more than %d", len(c.arch.Registers()))
		}
		return nil, lperr.Wrap(lperr.Compile, err)
	}
	g.emit(asm.Result{R: r})
	return g.code, nil
}

type codegen struct {
	alloc *register.Allocator
	code  []asm.Inst
}

func (g *codegen) emit(inst asm.Inst) {
	g.code = append(g.code, inst)
}

// expr emits code for x and returns the register holding its value.
func (g *codegen) expr(x ast.Expr) (register.Reg, error) {
	switch x := x.(type) {
	case ast.Num:
		r, err := g.alloc.Alloc()
		if err != nil {
			return 0, err
		}
		g.emit(asm.Store{N: x.Value, R: r})
		return r, nil
	case ast.Var:
		r, err := g.alloc.Alloc()
		if err != nil {
			return 0, err
		}
		g.emit(asm.Transfer{Var: x.Name, R: r})
		return r, nil
	case ast.UnaryOp:
		return g.unary(x)
	case ast.BinaryOp:
		return g.binary(x)
	default:
		return 0, fmt.Errorf("unknown expression type: %T", x)
	}
}

// unary negates by subtracting the operand from a register holding zero.
func (g *codegen) unary(x ast.UnaryOp) (register.Reg, error) {
	if x.Op != ast.Sub {
		return 0, fmt.Errorf("unsupported unary operator: %v", x.Op)
	}
	r, err := g.expr(x.X)
	if err != nil {
		return 0, err
	}
	zero, err := g.alloc.Alloc()
	if err != nil {
		return 0, err
	}
	g.emit(asm.Store{N: 0, R: zero})
	g.emit(asm.Sub{A: r, B: zero})
	return zero, nil
}

// binary evaluates the left operand before the right one.  Subtraction keeps
// its result in the left operand's register because Sub{A, B} computes B - A;
// the other operators keep it in the right operand's register.
func (g *codegen) binary(x ast.BinaryOp) (register.Reg, error) {
	rl, err := g.expr(x.L)
	if err != nil {
		return 0, err
	}
	rr, err := g.expr(x.R)
	if err != nil {
		return 0, err
	}
	if x.Op == ast.Sub {
		g.emit(asm.Sub{A: rr, B: rl})
		return rl, nil
	}
	inst, err := asm.Arith(x.Op, rl, rr)
	if err != nil {
		return 0, err
	}
	g.emit(inst)
	return rr, nil
}
