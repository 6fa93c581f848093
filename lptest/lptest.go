// Package lptest provides helpers for testing programs end to end, on both
// the tree interpreter and the register machine.
package lptest

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/luthersystems/lndw/asm"
	"github.com/luthersystems/lndw/ast"
	"github.com/luthersystems/lndw/compiler"
	"github.com/luthersystems/lndw/env"
	"github.com/luthersystems/lndw/interp"
	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/machine"
	"github.com/luthersystems/lndw/pipeline"
	"github.com/luthersystems/lndw/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCase is a single expression and its expected outcome.  When Error is
// non-empty evaluation must fail with exactly that message, otherwise it must
// produce Result.
type TestCase struct {
	Expr   string
	Env    env.Env
	Result int32
	Error  string
}

// TestSequence is a list of cases evaluated with one Pipeline.
type TestSequence []TestCase

// TestSuite is a named group of test sequences.
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs every sequence in tests as a subtest of t, using a
// Pipeline configured by conf.
func RunTestSuite(t *testing.T, tests TestSuite, conf ...pipeline.Config) {
	for i, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			p, err := pipeline.New(conf...)
			require.NoError(t, err, "test %d (%s): pipeline init", i, test.Name)
			for j, expr := range test.TestSequence {
				out, err := p.Eval(expr.Expr, expr.Env)
				if expr.Error != "" {
					if assert.Error(t, err, "test %d (%s): expr %d: %s", i, test.Name, j, expr.Expr) {
						assert.Equal(t, expr.Error, err.Error(), "test %d (%s): expr %d: %s", i, test.Name, j, expr.Expr)
					}
					continue
				}
				if assert.NoError(t, err, "test %d (%s): expr %d: %s", i, test.Name, j, expr.Expr) {
					assert.Equal(t, expr.Result, out.Value, "test %d (%s): expr %d: %s", i, test.Name, j, expr.Expr)
				}
			}
		})
	}
}

// TraceFunc returns a machine.Tracer that logs every execution step to t.
func TraceFunc(t testing.TB) machine.Tracer {
	return func(pc int, inst asm.Inst) {
		t.Helper()
		t.Logf("STEP %d %v", pc, inst)
	}
}

// RequireEquivalent evaluates x on the tree interpreter and compiles and runs
// it on the register machine.  Both must succeed with the same value or fail
// with the same message (ignoring the stage tag).
func RequireEquivalent(t testing.TB, x ast.Expr, b env.Bindings, arch register.Arch) {
	t.Helper()
	vtree, errtree := interp.Eval(x, b)
	insts, err := compiler.New(arch).Compile(x)
	require.NoError(t, err, "compile %v", x)
	require.NoError(t, asm.Validate(insts), "compile %v", x)
	prog, err := machine.Assemble(insts, machine.WithArch(arch))
	require.NoError(t, err, "assemble %v", x)
	vmach, errmach := prog.Run(b)
	if errtree != nil {
		require.Error(t, errmach, "%v: tree failed with %v", x, errtree)
		require.Equal(t, message(errtree), message(errmach), "%v", x)
		return
	}
	require.NoError(t, errmach, "%v", x)
	require.Equal(t, vtree, vmach, "%v", x)
}

// Vars are the variable names used by RandomExpr.
var Vars = []string{"x", "y", "z"}

// RandomExpr returns a pseudo-random expression whose tree is at most depth
// levels below the root.  The expression may reference any of Vars.
func RandomExpr(rng *rand.Rand, depth int) ast.Expr {
	if depth <= 0 || rng.Intn(4) == 0 {
		if rng.Intn(2) == 0 {
			return ast.Var{Name: Vars[rng.Intn(len(Vars))]}
		}
		return ast.Num{Value: randomValue(rng)}
	}
	if rng.Intn(5) == 0 {
		return ast.Neg(RandomExpr(rng, depth-1))
	}
	ops := ast.Operators()
	return ast.Binary(RandomExpr(rng, depth-1), ops[rng.Intn(len(ops))], RandomExpr(rng, depth-1))
}

// RandomEnv binds every name in Vars to a pseudo-random value.
func RandomEnv(rng *rand.Rand) env.Env {
	e := env.New()
	for _, name := range Vars {
		e.Bind(name, randomValue(rng))
	}
	return e
}

// randomValue favors small values and zero.
func randomValue(rng *rand.Rand) int32 {
	switch rng.Intn(8) {
	case 0:
		return int32(rng.Uint32())
	case 1:
		return 0
	default:
		return int32(rng.Intn(21) - 10)
	}
}

// message returns the text of err without its stage tag.
func message(err error) string {
	var lerr *lperr.Error
	if errors.As(err, &lerr) {
		return lerr.Msg
	}
	return err.Error()
}
