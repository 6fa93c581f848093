package cmd

import (
	"fmt"
	"os"

	"github.com/luthersystems/lndw/config"
	"github.com/luthersystems/lndw/env"
	"github.com/luthersystems/lndw/lperr"
	"github.com/luthersystems/lndw/pipeline"
	"github.com/spf13/cobra"
)

var (
	rootConfig string
	rootTrace  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lndw",
	Short: "Compile arithmetic s-expressions for a register machine",
	Long: `Read arithmetic expressions written as s-expressions, compile them to
register machine instructions and evaluate them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen once
// to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorDetail(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfig, "config", "",
		"Read settings from a YAML file")
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Trace register machine execution to stderr")
}

// loadConfig returns the settings from --config, or the defaults.
func loadConfig() (*config.Config, error) {
	c := config.Default()
	if rootConfig != "" {
		var err error
		c, err = config.Load(rootConfig)
		if err != nil {
			return nil, err
		}
	}
	if rootTrace {
		c.Trace = true
	}
	return c, nil
}

func newPipeline(cmd *cobra.Command, c *config.Config) (*pipeline.Pipeline, error) {
	return c.NewPipeline(cmd.ErrOrStderr())
}

// loadBindings combines variable bindings from the configuration, binding
// files and name=value pairs.  Later sources take precedence.
func loadBindings(c *config.Config, files []string, pairs []string) (env.Env, error) {
	e := env.New()
	e.Merge(c.Env)
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		b, err := env.LoadYAML(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		e.Merge(b)
	}
	b, err := env.ParseBindings(pairs)
	if err != nil {
		return nil, err
	}
	e.Merge(b)
	return e, nil
}

func errorDetail(err error) string {
	if lerr, ok := err.(*lperr.Error); ok {
		return lerr.Detail()
	}
	return err.Error()
}
