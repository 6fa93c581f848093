package asm

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/register"
	"github.com/luthersystems/lndw/sexpr"
)

// Instruction type symbols used in the s-expression form of a program.
const (
	TAdd      = "add"
	TSub      = "sub"
	TMul      = "mul"
	TDiv      = "div"
	TStore    = "store"
	TTransfer = "transfer"
	TResult   = "result"
)

// Encode returns the s-expression form of inst, e.g. (store 5 a).
func Encode(inst Inst) sexpr.SExpr {
	reg := func(r register.Reg) sexpr.SExpr { return sexpr.Sym(r.String()) }
	switch i := inst.(type) {
	case Add:
		return sexpr.L(sexpr.Sym(TAdd), reg(i.A), reg(i.B))
	case Sub:
		return sexpr.L(sexpr.Sym(TSub), reg(i.A), reg(i.B))
	case Mul:
		return sexpr.L(sexpr.Sym(TMul), reg(i.A), reg(i.B))
	case Div:
		return sexpr.L(sexpr.Sym(TDiv), reg(i.A), reg(i.B))
	case Store:
		return sexpr.L(sexpr.Sym(TStore), sexpr.Sym(strconv.FormatInt(int64(i.N), 10)), reg(i.R))
	case Transfer:
		return sexpr.L(sexpr.Sym(TTransfer), sexpr.Sym(i.Var), reg(i.R))
	case Result:
		return sexpr.L(sexpr.Sym(TResult), reg(i.R))
	default:
		panic(fmt.Sprintf("unknown instruction type: %T", inst))
	}
}

// EncodeProgram returns the s-expression form of p, a list of encoded
// instructions.
func EncodeProgram(p []Inst) sexpr.SExpr {
	lis := make(sexpr.List, len(p))
	for i := range p {
		lis[i] = Encode(p[i])
	}
	return lis
}

// ParseProgram creates a slice of instructions from the s-expression form of
// a program.  Errors are lperr.Parse errors.
func ParseProgram(v sexpr.SExpr) ([]Inst, error) {
	lis, ok := v.(sexpr.List)
	if !ok {
		return nil, lperr.Errorf(lperr.Parse, "program is not a list: %v", v)
	}
	prog := make([]Inst, 0, len(lis))
	for i := range lis {
		inst, err := ParseInstruction(lis[i])
		if err != nil {
			return nil, lperr.Errorf(lperr.Parse, "inst %d: %v", i, err)
		}
		prog = append(prog, inst)
	}
	return prog, nil
}

// ParseInstruction creates an instruction from its s-expression form.
func ParseInstruction(v sexpr.SExpr) (Inst, error) {
	lis, ok := v.(sexpr.List)
	if !ok || len(lis) == 0 {
		return nil, fmt.Errorf("instruction is not a non-empty list: %v", v)
	}
	typ, ok := lis[0].(sexpr.Sym)
	if !ok {
		return nil, fmt.Errorf("instruction type is not a symbol: %v", lis[0])
	}
	params := lis[1:]
	switch string(typ) {
	case TAdd, TSub, TMul, TDiv:
		if len(params) != 2 {
			return nil, fmt.Errorf("%s: expected 2 registers", typ)
		}
		a, err := parseReg(params[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		b, err := parseReg(params[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		switch string(typ) {
		case TAdd:
			return Add{a, b}, nil
		case TSub:
			return Sub{a, b}, nil
		case TMul:
			return Mul{a, b}, nil
		default:
			return Div{a, b}, nil
		}
	case TStore:
		if len(params) != 2 {
			return nil, fmt.Errorf("%s: expected a number and a register", typ)
		}
		sym, ok := params[0].(sexpr.Sym)
		if !ok {
			return nil, fmt.Errorf("%s: number is not a symbol: %v", typ, params[0])
		}
		n, err := strconv.ParseInt(string(sym), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid number: %v", typ, sym)
		}
		r, err := parseReg(params[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		return Store{int32(n), r}, nil
	case TTransfer:
		if len(params) != 2 {
			return nil, fmt.Errorf("%s: expected a variable and a register", typ)
		}
		name, ok := params[0].(sexpr.Sym)
		if !ok {
			return nil, fmt.Errorf("%s: variable is not a symbol: %v", typ, params[0])
		}
		r, err := parseReg(params[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		return Transfer{string(name), r}, nil
	case TResult:
		if len(params) != 1 {
			return nil, fmt.Errorf("%s: expected 1 register", typ)
		}
		r, err := parseReg(params[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		return Result{r}, nil
	default:
		return nil, fmt.Errorf("unknown instruction type: %v", typ)
	}
}

func parseReg(v sexpr.SExpr) (register.Reg, error) {
	sym, ok := v.(sexpr.Sym)
	if !ok || utf8.RuneCountInString(string(sym)) != 1 {
		return 0, fmt.Errorf("invalid register: %v", v)
	}
	c, _ := utf8.DecodeRuneInString(string(sym))
	return register.Reg(c), nil
}

// Validate checks that p ends with its only Result instruction and that no
// instruction reads a register before an earlier instruction writes it.
func Validate(p []Inst) error {
	if len(p) == 0 {
		return fmt.Errorf("empty program")
	}
	written := make(map[register.Reg]bool)
	for i, inst := range p {
		for _, r := range inst.Reads() {
			if !written[r] {
				return fmt.Errorf("inst %d: register %v read before it is written: %v", i, r, inst)
			}
		}
		if _, ok := inst.(Result); ok && i != len(p)-1 {
			return fmt.Errorf("inst %d: result instruction is not last", i)
		}
		if r, ok := inst.Writes(); ok {
			written[r] = true
		}
	}
	if _, ok := p[len(p)-1].(Result); !ok {
		return fmt.Errorf("program does not end with a result instruction")
	}
	return nil
}
