package cmd

import (
	"github.com/luthersystems/lndw/repl"
	"github.com/spf13/cobra"
)

var replPrompt string

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate expressions interactively",
	Long: `Start an interactive session.  Type :help for the list of session
commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := newPipeline(cmd, c)
		if err != nil {
			return err
		}
		s := repl.NewSession(p, c.Env, cmd.OutOrStdout())
		return repl.RunRepl(replPrompt, s)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", "lndw> ",
		"Prompt shown before each line of input")
}
