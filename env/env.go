// Package env holds variable bindings used to evaluate expressions.
package env

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bindings maps variable names to values.
type Bindings interface {
	// Lookup returns the value bound to name and false if name is unbound.
	Lookup(name string) (int32, bool)
}

// Env is a set of variable bindings.  The zero value is not usable; use New
// or make.
type Env map[string]int32

var _ Bindings = Env(nil)

// New returns an empty Env.
func New() Env {
	return make(Env)
}

// Lookup implements Bindings.
func (e Env) Lookup(name string) (int32, bool) {
	v, ok := e[name]
	return v, ok
}

// Bind creates or updates the binding for name.
func (e Env) Bind(name string, v int32) {
	e[name] = v
}

// Names returns the bound names in sorted order.
func (e Env) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge binds every variable of other in e, replacing existing bindings.
func (e Env) Merge(other Env) {
	for name, v := range other {
		e[name] = v
	}
}

// String renders the bindings as space separated name=value pairs.
func (e Env) String() string {
	pairs := make([]string, 0, len(e))
	for _, name := range e.Names() {
		pairs = append(pairs, fmt.Sprintf("%s=%d", name, e[name]))
	}
	return strings.Join(pairs, " ")
}

// ParseBindings parses name=value pairs such as those given on a command
// line.
func ParseBindings(pairs []string) (Env, error) {
	e := New()
	for _, pair := range pairs {
		name, val, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid binding: %q (expected name=value)", pair)
		}
		if strings.ContainsAny(name, "() \t\n") {
			return nil, fmt.Errorf("invalid variable name: %q", name)
		}
		x, err := strconv.ParseInt(strings.TrimSpace(val), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", name, val)
		}
		e[name] = int32(x)
	}
	return e, nil
}

// LoadYAML reads bindings from a YAML mapping of names to integers.
//
//	x: 5
//	y: -2
func LoadYAML(r io.Reader) (Env, error) {
	var m map[string]int32
	err := yaml.NewDecoder(r).Decode(&m)
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("bindings: %w", err)
	}
	e := New()
	e.Merge(Env(m))
	return e, nil
}
