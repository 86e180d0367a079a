package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/xuan/check"
	"github.com/gnolang/xuan/internal"
	"github.com/gnolang/xuan/internal/fixer"
	tt "github.com/gnolang/xuan/internal/types"
)

var dryRun bool

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Automatically fix issues",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize check engine", zap.Error(err))
		}

		runAutoFix(ctx, logger, engine, args, dryRun, cmd.OutOrStdout())
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run in dry-run mode (show fixes without applying them)")
}

func runAutoFix(ctx context.Context, logger *zap.Logger, engine check.Engine, paths []string, dryRun bool, out io.Writer) {
	fix := fixer.New(dryRun, out)

	for _, path := range paths {
		issues, err := check.ProcessPath(ctx, logger, engine, path, check.ProcessFile)
		if err != nil {
			logger.Error("error processing path", zap.String("path", path), zap.Error(err))
			continue
		}

		issuesByFile, files := groupByFile(issues)
		for _, filename := range files {
			if hasSyntaxError(issuesByFile[filename]) {
				logger.Warn("skipping file with syntax errors", zap.String("file", filename))
				continue
			}
			if _, err := fix.Fix(filename, issuesByFile[filename]); err != nil {
				logger.Error("error fixing issues", zap.String("file", filename), zap.Error(err))
			}
		}
	}
}

func hasSyntaxError(issues []tt.Issue) bool {
	for _, issue := range issues {
		if issue.Rule == internal.SyntaxErrorRule {
			return true
		}
	}
	return false
}
