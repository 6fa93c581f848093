package cmd

import (
	"fmt"

	"github.com/luthersystems/lndw/asm"
	"github.com/spf13/cobra"
)

var (
	execExpression bool
	execEnv        []string
	execEnvFiles   []string
)

// execCmd represents the exec command
var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "Run register machine programs",
	Long: `Run programs written in the s-expression form printed by
"compile --sexpr" on the register machine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		bindings, err := loadBindings(c, execEnvFiles, execEnv)
		if err != nil {
			return err
		}
		p, err := newPipeline(cmd, c)
		if err != nil {
			return err
		}
		progs, err := readExpressions(args, execExpression)
		if err != nil {
			return err
		}
		for _, x := range progs {
			v, err := p.Read(x.name, x.text)
			if err != nil {
				return err
			}
			insts, err := asm.ParseProgram(v)
			if err != nil {
				return err
			}
			result, err := p.Exec(insts, bindings)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().BoolVarP(&execExpression, "expression", "e", false,
		"Interpret arguments as programs")
	execCmd.Flags().StringArrayVar(&execEnv, "env", nil,
		"Bind a variable (name=value)")
	execCmd.Flags().StringArrayVar(&execEnvFiles, "env-file", nil,
		"Bind variables from a YAML file")
}
