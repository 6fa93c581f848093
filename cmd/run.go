package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runEnv        []string
	runEnvFiles   []string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate expressions",
	Long: `Evaluate expressions supplied via the command line or files.  Each
expression is evaluated by the tree interpreter and by the register machine
and the command fails if the two disagree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		bindings, err := loadBindings(c, runEnvFiles, runEnv)
		if err != nil {
			return err
		}
		p, err := newPipeline(cmd, c)
		if err != nil {
			return err
		}
		exprs, err := readExpressions(args, runExpression)
		if err != nil {
			return err
		}
		for _, x := range exprs {
			out, err := p.EvalFile(x.name, x.text, bindings)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Value)
		}
		return nil
	},
}

type source struct {
	name string
	text string
}

// readExpressions returns args themselves when expression is true, otherwise
// the contents of the files named by args.
func readExpressions(args []string, expression bool) ([]source, error) {
	exprs := make([]source, len(args))
	if expression {
		for i := range args {
			exprs[i] = source{text: args[i]}
		}
		return exprs, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		exprs[i] = source{name: path, text: string(b)}
	}
	return exprs, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as expressions")
	runCmd.Flags().StringArrayVar(&runEnv, "env", nil,
		"Bind a variable (name=value)")
	runCmd.Flags().StringArrayVar(&runEnvFiles, "env-file", nil,
		"Bind variables from a YAML file")
}
