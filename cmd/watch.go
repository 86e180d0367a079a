package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/xuan/formatter"
	"github.com/gnolang/xuan/internal"
	tt "github.com/gnolang/xuan/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-check xuan files whenever they change",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}

		w, err := internal.NewWatcher(engine, logger, args, printFileIssues(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		logger.Info("Watching for changes", zap.Strings("dirs", args))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		return w.Stop()
	},
}

// printFileIssues renders the issues of each re-checked file.
func printFileIssues(out io.Writer) internal.ReportFunc {
	return func(filename string, issues []tt.Issue) {
		if len(issues) == 0 {
			fmt.Fprintf(out, "%s: ok\n", filename)
			return
		}
		sourceCode, err := internal.ReadSourceCode(filename)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			return
		}
		fmt.Fprint(out, formatter.GenerateFormattedIssue(issues, sourceCode))
	}
}
