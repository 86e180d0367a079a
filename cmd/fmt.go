package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/xuan/internal/fixer"
)

var writeInPlace bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Print sources in their canonical form",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, filename := range args {
			if err := formatFile(cmd.OutOrStdout(), filename, writeInPlace); err != nil {
				logger.Error("Error formatting file", zap.String("file", filename), zap.Error(err))
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d file(s) could not be formatted", failed)
		}
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "Write the result to the source file instead of stdout")
}

func formatFile(out io.Writer, filename string, write bool) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	formatted, err := fixer.Format(string(content))
	if err != nil {
		return err
	}

	if !write {
		_, err = fmt.Fprint(out, formatted)
		return err
	}
	if formatted == string(content) {
		return nil
	}
	info, err := os.Stat(filename)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(formatted), info.Mode().Perm())
}
