package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnolang/xuan/ast"
	"github.com/gnolang/xuan/parser"
	"github.com/gnolang/xuan/token"
)

var parseTree bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return printProgram(cmd.OutOrStdout(), string(content), parseTree)
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseTree, "tree", false, "Print every node with its range instead of the printed form")
}

func printProgram(out io.Writer, source string, tree bool) error {
	program, err := parser.ParseSource(source)
	if err != nil {
		return err
	}
	if !tree {
		_, err = fmt.Fprint(out, program.String())
		return err
	}

	// nodes nest by range containment
	var stack []token.Range
	ast.Inspect(program, func(n ast.Node) bool {
		r := n.Span()
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if r.Start >= top.Start && r.End <= top.End {
				break
			}
			stack = stack[:len(stack)-1]
		}
		fmt.Fprintf(out, "%*s%T %d..%d\n", len(stack)*2, "", n, r.Start, r.End)
		stack = append(stack, r)
		return true
	})
	return nil
}
