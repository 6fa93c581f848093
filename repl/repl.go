// Package repl implements an interactive loop that evaluates expressions.
package repl

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/luthersystems/lndw/asm"
	"github.com/luthersystems/lndw/ast"
	"github.com/luthersystems/lndw/env"
	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/parser/lexer"
	"github.com/luthersystems/lndw/parser/token"
	"github.com/luthersystems/lndw/pipeline"
)

const help = `:insts       toggle printing of compiled instructions
:tree        toggle printing of the expression tree
:let NAME N  bind variable NAME to N
:env         print variable bindings
:quit        exit
`

// Session is the state of an interactive session.
type Session struct {
	Pipeline  *pipeline.Pipeline
	Env       env.Env
	Out       io.Writer
	ShowInsts bool
	ShowTree  bool
}

// NewSession returns a Session that evaluates with p and writes to out.
func NewSession(p *pipeline.Pipeline, bindings env.Env, out io.Writer) *Session {
	e := env.New()
	e.Merge(bindings)
	return &Session{Pipeline: p, Env: e, Out: out}
}

// Eval handles one complete line of input.  Eval returns true if the session
// should end.
func (s *Session) Eval(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if strings.HasPrefix(line, ":") {
		return s.command(strings.Fields(line))
	}
	out, err := s.Pipeline.Eval(line, s.Env)
	if err != nil {
		return false, err
	}
	if s.ShowTree {
		fmt.Fprintf(s.Out, "tree: %v\n", out.Expr)
		if vars := ast.FreeVars(out.Expr); len(vars) > 0 {
			fmt.Fprintf(s.Out, "vars: %s\n", strings.Join(vars, " "))
		}
	}
	if s.ShowInsts {
		_, err := asm.FormatProgram(s.Out, out.Insts, "  ")
		if err != nil {
			return false, err
		}
	}
	fmt.Fprintln(s.Out, out.Value)
	return false, nil
}

func (s *Session) command(fields []string) (bool, error) {
	switch fields[0] {
	case ":quit", ":q":
		return true, nil
	case ":help":
		fmt.Fprint(s.Out, help)
	case ":insts":
		s.ShowInsts = !s.ShowInsts
	case ":tree":
		s.ShowTree = !s.ShowTree
	case ":env":
		fmt.Fprintln(s.Out, s.Env)
	case ":let":
		if len(fields) != 3 {
			return false, fmt.Errorf("usage: :let NAME N")
		}
		if _, err := strconv.ParseInt(fields[1], 10, 32); err == nil {
			return false, fmt.Errorf("invalid variable name: %s", fields[1])
		}
		b, err := env.ParseBindings([]string{fields[1] + "=" + fields[2]})
		if err != nil {
			return false, err
		}
		s.Env.Merge(b)
	default:
		return false, fmt.Errorf("unknown command: %s (try :help)", fields[0])
	}
	return false, nil
}

// Incomplete returns true if text opens more lists than it closes.
func Incomplete(text string) bool {
	lex := lexer.New(token.NewScanner("", text))
	depth := 0
	for {
		tok := lex.NextToken()
		switch tok.Type {
		case token.PAREN_L:
			depth++
		case token.PAREN_R:
			depth--
		case token.SYMBOL:
		default:
			return depth > 0
		}
	}
}

// RunRepl runs an interactive loop for s until input ends or the user quits.
func RunRepl(prompt string, s *Session) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			line = nil
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) == 0 {
			continue
		}
		if Incomplete(string(line)) {
			buf = append([]byte(nil), line...)
			rl.SetPrompt(contPrompt)
			continue
		}
		quit, evalErr := s.Eval(string(line))
		if evalErr != nil {
			errln(detail(evalErr))
			continue
		}
		if quit {
			return nil
		}
	}
	if err != io.EOF {
		return err
	}
	errln("done")
	return nil
}

func detail(err error) string {
	if lerr, ok := err.(*lperr.Error); ok {
		return lerr.Detail()
	}
	return err.Error()
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
