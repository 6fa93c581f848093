/*
Package machine executes register machine programs.

A program is assembled once into a sequence of Code, each holding the source
instruction and an Executor which performs it.  Every run of a program gets a
fresh register file in which all registers start unset, so a Program may be
run any number of times, concurrently.
*/
package machine

import (
	"errors"
	"fmt"

	"github.com/luthersystems/lndw/asm"
	"github.com/luthersystems/lndw/env"
	"github.com/luthersystems/lndw/langop"
	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/register"
)

// errHalt is returned by the Executor of a Result instruction to stop
// execution.
var errHalt = errors.New("halt")

// Executor performs one instruction on a machine thread.
type Executor func(*T) error

// Code represents an indivisible unit of computation and corresponds to one
// assembly instruction.
type Code struct {
	// Text is the source instruction which produced Exec during the assembly
	// process.
	Text asm.Inst
	// Exec performs the instruction.
	Exec Executor
}

// Tracer is called before each instruction is executed.
type Tracer func(pc int, inst asm.Inst)

// Option configures assembly of a Program.
type Option func(*Program)

// WithArch assembles programs for arch instead of register.DefaultArch.
func WithArch(arch register.Arch) Option {
	return func(p *Program) {
		p.arch = arch
	}
}

// WithTracer calls fn before every executed instruction.
func WithTracer(fn Tracer) Option {
	return func(p *Program) {
		p.trace = fn
	}
}

// WithRegisterTrace installs fn as the Trace function of every register
// during execution.
func WithRegisterTrace(fn func(name register.Reg, oldval, newval int32)) Option {
	return func(p *Program) {
		p.regTrace = fn
	}
}

// Program is an assembled program.
type Program struct {
	arch     register.Arch
	code     []Code
	trace    Tracer
	regTrace func(name register.Reg, oldval, newval int32)
}

// T is the state of one execution of a Program.
type T struct {
	Regs   *register.File
	Env    env.Bindings
	pc     int
	result int32
}

// PC returns the index of the instruction being executed.
func (t *T) PC() int {
	return t.pc
}

// Assemble translates insts into an executable Program.  Assemble fails with
// an lperr.Runtime error if an instruction names a register that the
// architecture does not define.
func Assemble(insts []asm.Inst, opts ...Option) (*Program, error) {
	p := &Program{}
	for _, fn := range opts {
		fn(p)
	}
	if p.arch == nil {
		p.arch = register.DefaultArch()
	}
	p.code = make([]Code, len(insts))
	for i, inst := range insts {
		err := p.checkRegisters(inst)
		if err != nil {
			return nil, lperr.Errorf(lperr.Runtime, "inst %d: %v", i, err)
		}
		exec, err := executor(inst)
		if err != nil {
			return nil, lperr.Errorf(lperr.Runtime, "inst %d: %v", i, err)
		}
		p.code[i] = Code{Text: inst, Exec: exec}
	}
	return p, nil
}

func (p *Program) checkRegisters(inst asm.Inst) error {
	regs := inst.Reads()
	if r, ok := inst.Writes(); ok {
		regs = append(regs, r)
	}
	for _, r := range regs {
		if _, ok := p.arch.GetRegisterIndex(r); !ok {
			return fmt.Errorf("invalid register: %v", r)
		}
	}
	return nil
}

// Len returns the number of instructions in p.
func (p *Program) Len() int {
	return len(p.code)
}

// Code returns the instruction at index i.
func (p *Program) Code(i int) Code {
	return p.code[i]
}

// Run executes p sequentially with variables bound by b and returns the value
// of the register named by the first Result instruction.  Errors are
// lperr.Runtime errors.
func (p *Program) Run(b env.Bindings) (int32, error) {
	if b == nil {
		b = env.New()
	}
	t := &T{
		Regs: p.arch.MakeFile(),
		Env:  b,
	}
	if p.regTrace != nil {
		t.Regs.SetTrace(p.regTrace)
	}
	for t.pc = 0; t.pc < len(p.code); t.pc++ {
		c := p.code[t.pc]
		if p.trace != nil {
			p.trace(t.pc, c.Text)
		}
		err := c.Exec(t)
		if err == errHalt {
			return t.result, nil
		}
		if err != nil {
			return 0, lperr.Wrap(lperr.Runtime, err)
		}
	}
	return 0, lperr.Errorf(lperr.Runtime, "no result instruction")
}

// Run assembles insts for the default architecture and runs them with b.
func Run(insts []asm.Inst, b env.Bindings) (int32, error) {
	p, err := Assemble(insts)
	if err != nil {
		return 0, err
	}
	return p.Run(b)
}

func executor(inst asm.Inst) (Executor, error) {
	switch inst := inst.(type) {
	case asm.Store:
		return func(t *T) error {
			return t.Regs.Set(inst.R, inst.N)
		}, nil
	case asm.Transfer:
		return func(t *T) error {
			v, ok := t.Env.Lookup(inst.Var)
			if !ok {
				return fmt.Errorf("unbound variable: %s", inst.Var)
			}
			return t.Regs.Set(inst.R, v)
		}, nil
	case asm.Add:
		return arith(langop.Add, inst.A, inst.B, false), nil
	case asm.Sub:
		return arith(langop.Sub, inst.A, inst.B, true), nil
	case asm.Mul:
		return arith(langop.Mul, inst.A, inst.B, false), nil
	case asm.Div:
		return arith(langop.Div, inst.A, inst.B, false), nil
	case asm.Result:
		return func(t *T) error {
			v, err := t.Regs.Get(inst.R)
			if err != nil {
				return err
			}
			t.result = v
			return errHalt
		}, nil
	default:
		return nil, fmt.Errorf("unknown instruction type: %T", inst)
	}
}

// arith returns an Executor computing fn(a, b) into register b.  When swap is
// true the operands are reversed, computing fn(b, a).
func arith(fn langop.Func, a, b register.Reg, swap bool) Executor {
	return func(t *T) error {
		x1, err := t.Regs.Get(a)
		if err != nil {
			return err
		}
		x2, err := t.Regs.Get(b)
		if err != nil {
			return err
		}
		if swap {
			x1, x2 = x2, x1
		}
		v, err := fn(x1, x2)
		if err != nil {
			return err
		}
		return t.Regs.Set(b, v)
	}
}
