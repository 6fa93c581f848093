package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootConfig, rootTrace = "", false
	runExpression, runEnv, runEnvFiles = false, nil, nil
	compileExpression, compileSExpr = false, false
	execExpression, execEnv, execEnvFiles = false, nil, nil
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	out, err := execute(t, "run", "-e", "(+ 1 2)", "(* (+ 1 2) 3)")
	require.NoError(t, err)
	assert.Equal(t, "3\n9\n", out)

	out, err = execute(t, "run", "-e", "--env", "x=5", "(- x)")
	require.NoError(t, err)
	assert.Equal(t, "-5\n", out)

	_, err = execute(t, "run", "-e", "(/ 4 0)")
	assert.EqualError(t, err, "integer division by zero (interpreter)")

	_, err = execute(t, "run", "-e", "--env", "x", "x")
	assert.Error(t, err)

	dir := t.TempDir()
	src := writeFile(t, dir, "expr.lisp", "(* x\n   (+ y 1))\n")
	vars := writeFile(t, dir, "vars.yml", "x: 3\ny: 4\n")
	out, err = execute(t, "run", "--env-file", vars, "--env", "y=1", src)
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)

	conf := writeFile(t, dir, "lndw.yml", "registers: 2\nenv:\n  x: 1\n")
	_, err = execute(t, "--config", conf, "run", "-e", "(+ x (+ 1 2))")
	assert.EqualError(t, err, "out of registers: expression needs more than 2 (compile)")
	out, err = execute(t, "--config", conf, "run", "-e", "(+ x 2)")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestCompile(t *testing.T) {
	out, err := execute(t, "compile", "-e", "(+ 1 2)")
	require.NoError(t, err)
	expect := "" +
		"store the number 1 in register a\n" +
		"store the number 2 in register b\n" +
		"add register a to register b\n" +
		"the result is in register b\n"
	assert.Equal(t, expect, out)

	out, err = execute(t, "compile", "-e", "--sexpr", "(- x 2)")
	require.NoError(t, err)
	assert.Equal(t, "((transfer x a)\n (store 2 b)\n (sub b a)\n (result a))\n", out)

	_, err = execute(t, "compile", "-e", "(foo 1 2)")
	assert.EqualError(t, err, "unsupported operator: foo (ir gen)")
}

func TestExec(t *testing.T) {
	listing, err := execute(t, "compile", "-e", "--sexpr", "(* (- x 2) y)")
	require.NoError(t, err)
	out, err := execute(t, "exec", "-e", "--env", "x=5", "--env", "y=-3", listing)
	require.NoError(t, err)
	assert.Equal(t, "-9\n", out)

	_, err = execute(t, "exec", "-e", listing)
	assert.EqualError(t, err, "unbound variable: x (runtime)")

	_, err = execute(t, "exec", "-e", "((jump a))")
	assert.Error(t, err)

	_, err = execute(t, "exec", "-e", "((store 1 a))")
	assert.EqualError(t, err, "no result instruction (runtime)")
}
