// Package config loads toolchain settings from YAML files.
//
//	registers: 26
//	max_depth: 64
//	reader: parsec
//	trace: true
//	env:
//	  x: 5
//	  y: -2
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/lndw/env"
	"github.com/luthersystems/lndw/parser/rdparser"
	"github.com/luthersystems/lndw/pipeline"
	"github.com/luthersystems/lndw/register"
	"gopkg.in/yaml.v3"
)

// Config holds toolchain settings.
type Config struct {
	Path      string
	Registers int
	MaxDepth  int
	Reader    string
	Trace     bool
	Env       env.Env
}

type configFile struct {
	Registers *int             `yaml:"registers"`
	MaxDepth  *int             `yaml:"max_depth"`
	Reader    string           `yaml:"reader"`
	Trace     bool             `yaml:"trace"`
	Env       map[string]int32 `yaml:"env"`
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Registers: register.DefaultRegisters,
		MaxDepth:  rdparser.DefaultMaxDepth,
		Reader:    pipeline.ReaderRD,
		Env:       env.New(),
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	c, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// Decode reads settings from r.  Keys missing from the document keep their
// default values and unknown keys are an error.  An empty document yields
// Default().
func Decode(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	c := raw.toConfig()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (raw *configFile) toConfig() *Config {
	c := Default()
	if raw.Registers != nil {
		c.Registers = *raw.Registers
	}
	if raw.MaxDepth != nil {
		c.MaxDepth = *raw.MaxDepth
	}
	if raw.Reader != "" {
		c.Reader = raw.Reader
	}
	c.Trace = raw.Trace
	c.Env.Merge(env.Env(raw.Env))
	return c
}

// Validate reports every invalid setting in c.
func (c *Config) Validate() error {
	var issues []string
	if c.Registers < 1 || c.Registers > register.MaxRegisters {
		issues = append(issues, fmt.Sprintf("registers must be between 1 and %d, got %d", register.MaxRegisters, c.Registers))
	}
	switch c.Reader {
	case pipeline.ReaderRD, pipeline.ReaderParsec:
	default:
		issues = append(issues, fmt.Sprintf("reader must be %q or %q, got %q", pipeline.ReaderRD, pipeline.ReaderParsec, c.Reader))
	}
	for _, name := range c.Env.Names() {
		if name == "" || strings.ContainsAny(name, "() \t\n") {
			issues = append(issues, fmt.Sprintf("invalid variable name in env: %q", name))
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// Pipeline returns the pipeline settings described by c.  When c.Trace is
// set trace output is written to w.
func (c *Config) Pipeline(w io.Writer) ([]pipeline.Config, error) {
	r, err := pipeline.ReaderNamed(c.Reader, c.MaxDepth)
	if err != nil {
		return nil, err
	}
	conf := []pipeline.Config{
		pipeline.WithMaxDepth(c.MaxDepth),
		pipeline.WithRegisters(c.Registers),
		pipeline.WithReader(r),
	}
	if c.Trace {
		conf = append(conf, pipeline.WithTrace(w))
	}
	return conf, nil
}

// NewPipeline is a convenience wrapper around Pipeline and pipeline.New.
func (c *Config) NewPipeline(w io.Writer) (*pipeline.Pipeline, error) {
	conf, err := c.Pipeline(w)
	if err != nil {
		return nil, err
	}
	return pipeline.New(conf...)
}
