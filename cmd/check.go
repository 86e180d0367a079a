package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/xuan/check"
	"github.com/gnolang/xuan/formatter"
	"github.com/gnolang/xuan/internal"
	tt "github.com/gnolang/xuan/internal/types"
)

var (
	ignoreRules     string
	ignorePaths     string
	checkJSONOutput bool
	outPath         string
	cacheDir        string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check xuan sources for syntax errors and suspicious code",
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

		if cacheDir != "" {
			cache, err := internal.NewCache(cacheDir)
			if err != nil {
				logger.Fatal("Failed to open cache", zap.String("dir", cacheDir), zap.Error(err))
			}
			if cfgFile != "" {
				if err := cache.AddDependency(cfgFile); err != nil {
					logger.Warn("Failed to track configuration file", zap.Error(err))
				}
			}
			engine.SetCache(cache)
		}

		code := runCheck(ctx, logger, engine, args, checkJSONOutput, outPath, os.Stdout)
		cancel()
		_ = logger.Sync()
		os.Exit(code)
	},
}

func init() {
	checkCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	checkCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths or globs to ignore")
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output issues in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory of the issue cache (disabled when empty)")
}

// newEngine builds an engine from the persistent and check flags.
func newEngine() (*internal.Engine, error) {
	engine, err := check.New(".", cfgFile)
	if err != nil {
		return nil, err
	}

	for _, rule := range splitList(ignoreRules) {
		engine.IgnoreRule(rule)
	}
	for _, path := range splitList(ignorePaths) {
		engine.IgnorePath(path)
	}
	return engine, nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// runCheck checks paths, prints the issues and returns the exit code.
func runCheck(ctx context.Context, logger *zap.Logger, engine check.Engine, paths []string, isJSON bool, jsonOutput string, out io.Writer) int {
	issues, err := check.ProcessFiles(ctx, logger, engine, paths, check.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return 1
	}

	if err := printIssues(logger, issues, isJSON, jsonOutput, out); err != nil {
		logger.Error("Error printing issues", zap.Error(err))
		return 1
	}

	if len(issues) > 0 {
		return 1
	}
	return 0
}

// Report is the JSON form of a check run.
type Report struct {
	RunID  string                `json:"run_id"`
	Issues map[string][]tt.Issue `json:"issues"`
}

func groupByFile(issues []tt.Issue) (map[string][]tt.Issue, []string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)
	return issuesByFile, sortedFiles
}

func printIssues(logger *zap.Logger, issues []tt.Issue, isJSON bool, jsonOutput string, out io.Writer) error {
	issuesByFile, sortedFiles := groupByFile(issues)

	if !isJSON {
		for _, filename := range sortedFiles {
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			fmt.Fprint(out, formatter.GenerateFormattedIssue(issuesByFile[filename], sourceCode))
		}
		return nil
	}

	report := Report{RunID: uuid.NewString(), Issues: issuesByFile}
	d, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling issues to JSON: %w", err)
	}
	if jsonOutput == "" {
		_, err = fmt.Fprintln(out, string(d))
		return err
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	logger.Info("Report written", zap.String("run_id", report.RunID), zap.String("path", jsonOutput))
	return nil
}
