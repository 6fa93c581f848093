/*
Package pipeline connects the stages of the expression toolchain.

	text -> tokens -> s-expression -> Expr -> instructions -> result

The package level functions run one stage each with default settings.  A
Pipeline runs every stage with settings given as Config values and can
evaluate an expression on both the tree interpreter and the register
machine, failing when they disagree.
*/
package pipeline

import (
	"fmt"
	"io"
	"log"

	"github.com/luthersystems/lndw/asm"
	"github.com/luthersystems/lndw/ast"
	"github.com/luthersystems/lndw/compiler"
	"github.com/luthersystems/lndw/env"
	"github.com/luthersystems/lndw/interp"
	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/machine"
	"github.com/luthersystems/lndw/parser"
	"github.com/luthersystems/lndw/parser/lexer"
	"github.com/luthersystems/lndw/parser/rdparser"
	"github.com/luthersystems/lndw/parser/token"
	"github.com/luthersystems/lndw/register"
	"github.com/luthersystems/lndw/sexpr"
)

// RunLexer splits text into tokens.
func RunLexer(text string) ([]*token.Token, error) {
	return lexer.Run(text)
}

// RunReader reads a single s-expression from toks.
func RunReader(toks []*token.Token) (sexpr.SExpr, error) {
	return rdparser.Run(toks)
}

// BuildAST converts an s-expression into an arithmetic expression.
func BuildAST(x sexpr.SExpr) (ast.Expr, error) {
	return ast.Build(x)
}

// Compile translates x into register machine instructions using the default
// register pool.
func Compile(x ast.Expr) ([]asm.Inst, error) {
	return compiler.Compile(x)
}

// InterpretTree evaluates x directly.
func InterpretTree(x ast.Expr, b env.Bindings) (int32, error) {
	return interp.Eval(x, b)
}

// InterpretInsts runs a compiled program on the register machine.
func InterpretInsts(p []asm.Inst, b env.Bindings) (int32, error) {
	return machine.Run(p, b)
}

// Reader names accepted by ReaderNamed.
const (
	ReaderRD     = "rd"
	ReaderParsec = "parsec"
)

// ReaderNamed returns the s-expression reader called name with its nesting
// depth limited to maxDepth.
func ReaderNamed(name string, maxDepth int) (sexpr.Reader, error) {
	switch name {
	case "", ReaderRD:
		return rdparser.NewReader(rdparser.WithMaxDepth(maxDepth)), nil
	case ReaderParsec:
		return parser.NewReaderDepth(maxDepth), nil
	default:
		return nil, fmt.Errorf("unknown reader: %q", name)
	}
}

// Config is a function that configures a Pipeline.
type Config func(p *Pipeline) error

// WithMaxDepth returns a Config that limits the nesting depth of lists read
// by the default reader.  A non-positive n removes the limit.  WithMaxDepth
// has no effect on a reader given to WithReader.
func WithMaxDepth(n int) Config {
	return func(p *Pipeline) error {
		p.maxDepth = n
		return nil
	}
}

// WithRegisters returns a Config that makes the pipeline compile for a pool
// of n registers.
func WithRegisters(n int) Config {
	return func(p *Pipeline) error {
		arch, err := register.Pool(n)
		if err != nil {
			return err
		}
		p.arch = arch
		return nil
	}
}

// WithReader returns a Config that makes the pipeline use r to read source
// text.
func WithReader(r sexpr.Reader) Config {
	return func(p *Pipeline) error {
		p.reader = r
		return nil
	}
}

// WithTrace returns a Config that logs every instruction executed by the
// register machine, and every register write, to w.
func WithTrace(w io.Writer) Config {
	return func(p *Pipeline) error {
		if w == nil {
			p.logger = nil
			return nil
		}
		p.logger = log.New(w, "trace: ", 0)
		return nil
	}
}

// Pipeline runs source text through every stage of the toolchain.  A Pipeline
// is not modified after New returns and may be used concurrently.
type Pipeline struct {
	maxDepth int
	reader   sexpr.Reader
	arch     register.Arch
	compiler *compiler.Compiler
	logger   *log.Logger
}

// New returns a Pipeline configured by conf.
func New(conf ...Config) (*Pipeline, error) {
	p := &Pipeline{
		maxDepth: rdparser.DefaultMaxDepth,
		arch:     register.DefaultArch(),
	}
	for _, fn := range conf {
		err := fn(p)
		if err != nil {
			return nil, err
		}
	}
	if p.reader == nil {
		p.reader = rdparser.NewReader(rdparser.WithMaxDepth(p.maxDepth))
	}
	p.compiler = compiler.New(p.arch)
	return p, nil
}

// Arch returns the register architecture programs are compiled for.
func (p *Pipeline) Arch() register.Arch {
	return p.arch
}

// Read reads a single s-expression from text.  The name is used in error
// locations.
func (p *Pipeline) Read(name string, text string) (sexpr.SExpr, error) {
	return p.reader.Read(name, text)
}

// Parse reads text and builds its expression tree.
func (p *Pipeline) Parse(text string) (ast.Expr, error) {
	return p.ParseFile("", text)
}

// ParseFile is like Parse but names the source of text for error locations.
func (p *Pipeline) ParseFile(name string, text string) (ast.Expr, error) {
	x, err := p.Read(name, text)
	if err != nil {
		return nil, err
	}
	return ast.Build(x)
}

// Compile translates x for the pipeline's register architecture.
func (p *Pipeline) Compile(x ast.Expr) ([]asm.Inst, error) {
	return p.compiler.Compile(x)
}

// Exec runs a program on the register machine.
func (p *Pipeline) Exec(insts []asm.Inst, b env.Bindings) (int32, error) {
	opts := []machine.Option{machine.WithArch(p.arch)}
	if p.logger != nil {
		logger := p.logger
		opts = append(opts,
			machine.WithTracer(func(pc int, inst asm.Inst) {
				logger.Printf("%3d %v", pc, inst)
			}),
			machine.WithRegisterTrace(func(name register.Reg, oldval, newval int32) {
				logger.Printf("    %v = %d", name, newval)
			}),
		)
	}
	prog, err := machine.Assemble(insts, opts...)
	if err != nil {
		return 0, err
	}
	return prog.Run(b)
}

// Outcome holds the products of every stage of a successful evaluation.
type Outcome struct {
	SExpr sexpr.SExpr
	Expr  ast.Expr
	Insts []asm.Inst
	Value int32
}

// Eval runs text through every stage and evaluates it with both the tree
// interpreter and the register machine.  When both evaluators fail the tree
// interpreter's error is returned.  If exactly one of them fails, or they
// produce different values, Eval returns a Runtime error describing the
// disagreement.
func (p *Pipeline) Eval(text string, b env.Bindings) (*Outcome, error) {
	return p.EvalFile("", text, b)
}

// EvalFile is like Eval but names the source of text for error locations.
func (p *Pipeline) EvalFile(name string, text string, b env.Bindings) (*Outcome, error) {
	s, err := p.Read(name, text)
	if err != nil {
		return nil, err
	}
	x, err := ast.Build(s)
	if err != nil {
		return nil, err
	}
	insts, err := p.Compile(x)
	if err != nil {
		return nil, err
	}
	v, err := p.Check(x, insts, b)
	if err != nil {
		return nil, err
	}
	return &Outcome{SExpr: s, Expr: x, Insts: insts, Value: v}, nil
}

// Check evaluates x with the tree interpreter and insts with the register
// machine and ensures the two agree.
func (p *Pipeline) Check(x ast.Expr, insts []asm.Inst, b env.Bindings) (int32, error) {
	vtree, errtree := interp.Eval(x, b)
	vmach, errmach := p.Exec(insts, b)
	switch {
	case errtree != nil && errmach != nil:
		return 0, errtree
	case errtree != nil:
		return 0, lperr.Errorf(lperr.Runtime, "evaluators disagree: tree: %v, instructions: %d", errtree, vmach)
	case errmach != nil:
		return 0, lperr.Errorf(lperr.Runtime, "evaluators disagree: tree: %d, instructions: %v", vtree, errmach)
	case vtree != vmach:
		return 0, lperr.Errorf(lperr.Runtime, "evaluators disagree: tree: %d, instructions: %d", vtree, vmach)
	}
	return vtree, nil
}
