package machine

import (
	"math"
	"testing"

	"github.com/luthersystems/lndw/asm"
	"github.com/luthersystems/lndw/env"
	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ok(t *testing.T) {
	for i, test := range []struct {
		insts  []asm.Inst
		env    env.Env
		result int32
	}{
		{[]asm.Inst{asm.Store{N: 7, R: 'a'}, asm.Result{R: 'a'}}, nil, 7},
		{[]asm.Inst{asm.Store{N: 1, R: 'a'}, asm.Store{N: 2, R: 'b'}, asm.Add{A: 'a', B: 'b'}, asm.Result{R: 'b'}}, nil, 3},
		// (- 10 4)
		{[]asm.Inst{asm.Store{N: 10, R: 'a'}, asm.Store{N: 4, R: 'b'}, asm.Sub{A: 'b', B: 'a'}, asm.Result{R: 'a'}}, nil, 6},
		{[]asm.Inst{asm.Store{N: 6, R: 'a'}, asm.Store{N: 7, R: 'b'}, asm.Mul{A: 'a', B: 'b'}, asm.Result{R: 'b'}}, nil, 42},
		// Div{A, B} leaves A / B in B
		{[]asm.Inst{asm.Store{N: 7, R: 'a'}, asm.Store{N: 2, R: 'b'}, asm.Div{A: 'a', B: 'b'}, asm.Result{R: 'b'}}, nil, 3},
		{[]asm.Inst{asm.Store{N: -7, R: 'a'}, asm.Store{N: 2, R: 'b'}, asm.Div{A: 'a', B: 'b'}, asm.Result{R: 'b'}}, nil, -3},
		{[]asm.Inst{asm.Transfer{Var: "x", R: 'a'}, asm.Result{R: 'a'}}, env.Env{"x": 5}, 5},
		// (- x)
		{[]asm.Inst{asm.Transfer{Var: "x", R: 'a'}, asm.Store{N: 0, R: 'b'}, asm.Sub{A: 'a', B: 'b'}, asm.Result{R: 'b'}}, env.Env{"x": 5}, -5},
		{[]asm.Inst{asm.Store{N: math.MaxInt32, R: 'a'}, asm.Store{N: 1, R: 'b'}, asm.Add{A: 'a', B: 'b'}, asm.Result{R: 'b'}}, nil, math.MinInt32},
		{[]asm.Inst{asm.Store{N: math.MinInt32, R: 'a'}, asm.Store{N: -1, R: 'b'}, asm.Div{A: 'a', B: 'b'}, asm.Result{R: 'b'}}, nil, math.MinInt32},
		// instructions after the result are not executed
		{[]asm.Inst{asm.Store{N: 1, R: 'a'}, asm.Result{R: 'a'}, asm.Transfer{Var: "y", R: 'b'}}, nil, 1},
	} {
		v, err := Run(test.insts, test.env)
		if assert.NoError(t, err, "test %d: run failed", i) {
			assert.Equal(t, test.result, v, "test %d: unexpected result", i)
		}
	}
}

func TestRun_err(t *testing.T) {
	for i, test := range []struct {
		insts  []asm.Inst
		env    env.Env
		errmsg string
	}{
		{[]asm.Inst{asm.Transfer{Var: "x", R: 'a'}, asm.Result{R: 'a'}}, nil, "unbound variable: x (runtime)"},
		{[]asm.Inst{asm.Result{R: 'a'}}, nil, "unset register: a (runtime)"},
		{[]asm.Inst{asm.Store{N: 1, R: 'a'}, asm.Add{A: 'a', B: 'b'}, asm.Result{R: 'b'}}, nil, "unset register: b (runtime)"},
		{[]asm.Inst{asm.Store{N: 1, R: 'a'}, asm.Store{N: 0, R: 'b'}, asm.Div{A: 'a', B: 'b'}, asm.Result{R: 'b'}}, nil, "integer division by zero (runtime)"},
		{[]asm.Inst{asm.Store{N: 1, R: 'a'}}, nil, "no result instruction (runtime)"},
		{nil, nil, "no result instruction (runtime)"},
		{[]asm.Inst{asm.Store{N: 1, R: '?'}, asm.Result{R: '?'}}, nil, "inst 0: invalid register: ? (runtime)"},
	} {
		_, err := Run(test.insts, test.env)
		if assert.Error(t, err, "test %d: expected error", i) {
			assert.Equal(t, test.errmsg, err.Error(), "test %d: unexpected error", i)
			assert.True(t, lperr.Is(err, lperr.Runtime), "test %d: expected runtime error", i)
		}
	}
}

func TestProgram_reuse(t *testing.T) {
	p, err := Assemble([]asm.Inst{asm.Transfer{Var: "x", R: 'a'}, asm.Store{N: 2, R: 'b'}, asm.Mul{A: 'a', B: 'b'}, asm.Result{R: 'b'}})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, asm.Store{N: 2, R: 'b'}, p.Code(1).Text)
	for x := int32(-3); x <= 3; x++ {
		v, err := p.Run(env.Env{"x": x})
		require.NoError(t, err)
		assert.Equal(t, 2*x, v)
	}
}

func TestProgram_trace(t *testing.T) {
	arch := register.MustArch('p', 'q')
	var pcs []int
	var writes []register.Reg
	p, err := Assemble(
		[]asm.Inst{asm.Store{N: 3, R: 'p'}, asm.Store{N: 4, R: 'q'}, asm.Add{A: 'p', B: 'q'}, asm.Result{R: 'q'}},
		WithArch(arch),
		WithTracer(func(pc int, inst asm.Inst) { pcs = append(pcs, pc) }),
		WithRegisterTrace(func(name register.Reg, oldval, newval int32) { writes = append(writes, name) }),
	)
	require.NoError(t, err)
	v, err := p.Run(nil)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
	assert.Equal(t, []int{0, 1, 2, 3}, pcs)
	assert.Equal(t, []register.Reg{'p', 'q', 'q'}, writes)

	_, err = Assemble([]asm.Inst{asm.Store{N: 1, R: 'a'}}, WithArch(arch))
	assert.EqualError(t, err, "inst 0: invalid register: a (runtime)")
}
