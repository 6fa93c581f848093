package env

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv(t *testing.T) {
	e := New()
	_, ok := e.Lookup("x")
	assert.False(t, ok)
	e.Bind("x", 5)
	e.Bind("a", -1)
	v, ok := e.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, int32(5), v)
	assert.Equal(t, []string{"a", "x"}, e.Names())
	assert.Equal(t, "a=-1 x=5", e.String())
	e.Merge(Env{"x": 6, "y": 7})
	assert.Equal(t, "a=-1 x=6 y=7", e.String())
}

func TestParseBindings(t *testing.T) {
	e, err := ParseBindings([]string{"x=5", " y = -2 ", "1x=3"})
	require.NoError(t, err)
	assert.Equal(t, Env{"x": 5, "y": -2, "1x": 3}, e)

	for i, pair := range []string{"x", "=5", "x=", "x=abc", "x=2147483648", "a b=1", "(x)=1"} {
		_, err := ParseBindings([]string{pair})
		assert.Error(t, err, "test %d: %q", i, pair)
	}
}

func TestLoadYAML(t *testing.T) {
	e, err := LoadYAML(strings.NewReader("x: 5\ny: -2\n"))
	require.NoError(t, err)
	assert.Equal(t, Env{"x": 5, "y": -2}, e)

	e, err = LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Len(t, e, 0)

	_, err = LoadYAML(strings.NewReader("x: hello\n"))
	assert.Error(t, err)
	_, err = LoadYAML(strings.NewReader("- 1\n- 2\n"))
	assert.Error(t, err)
}
