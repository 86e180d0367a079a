package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/xuan/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		logger.Debug("Tokenizing", zap.String("file", args[0]))
		return printTokens(cmd.OutOrStdout(), string(content))
	},
}

// printTokens writes one token per line with its codepoint range.
func printTokens(out io.Writer, source string) error {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Fprintf(out, "%d..%d\t%s\t%s\n", tok.Range.Start, tok.Range.End, tok.Kind, tok)
	}
	return nil
}
