package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/lndw/asm"
	"github.com/spf13/cobra"
)

var (
	compileExpression bool
	compileSExpr      bool
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Print register machine instructions",
	Long: `Compile expressions supplied via the command line or files and print
the resulting instructions.  With --sexpr the program is printed in the
s-expression form read by the exec command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := newPipeline(cmd, c)
		if err != nil {
			return err
		}
		exprs, err := readExpressions(args, compileExpression)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, x := range exprs {
			expr, err := p.ParseFile(x.name, x.text)
			if err != nil {
				return err
			}
			insts, err := p.Compile(expr)
			if err != nil {
				return err
			}
			if compileSExpr {
				err = writeListing(w, insts)
			} else {
				_, err = asm.FormatProgram(w, insts, "")
			}
			if err != nil {
				return err
			}
		}
		return nil
	},
}

// writeListing writes p in s-expression form with one instruction per line.
func writeListing(w io.Writer, p []asm.Inst) error {
	lines := make([]string, len(p))
	for i := range p {
		lines[i] = asm.Encode(p[i]).String()
	}
	_, err := fmt.Fprintf(w, "(%s)\n", strings.Join(lines, "\n "))
	return err
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().BoolVarP(&compileExpression, "expression", "e", false,
		"Interpret arguments as expressions")
	compileCmd.Flags().BoolVar(&compileSExpr, "sexpr", false,
		"Print programs as s-expressions")
}
