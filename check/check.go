// Package check runs the xuan checker over sources, files and directory
// trees.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gnolang/xuan/internal"
	tt "github.com/gnolang/xuan/internal/types"
)

// Engine is what the Process functions drive. *internal.Engine implements it.
type Engine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// ProgressOutput receives the progress bar of directory checks.
var ProgressOutput io.Writer = os.Stderr

// New creates an engine configured from configurationPath. An empty path
// uses the default configuration.
func New(rootDir string, configurationPath string) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(rootDir, config.Rules)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	sources [][]byte,
	processor func(Engine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	logger = orNop(logger)

	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return allIssues, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor func(Engine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	logger = orNop(logger)

	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessPath checks a single file or every xuan file under a directory.
// Files are checked concurrently by a bounded set of workers. A failing
// file does not stop the others; the failures are joined into the returned
// error. On cancellation the issues found so far are returned with the
// context error.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	processor func(Engine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	logger = orNop(logger)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !internal.HasSourceExtension(path) {
			logger.Debug("Skipping non-source file", zap.String("file", path))
			return []tt.Issue{}, nil
		}
		issues, err := processor(engine, path)
		if err != nil {
			return []tt.Issue{}, err
		}
		return issues, nil
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}
	if len(files) == 0 {
		return []tt.Issue{}, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(ProgressOutput),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var (
		g      errgroup.Group
		mu     sync.Mutex
		issues = []tt.Issue{}
		errs   []error
	)
	g.SetLimit(runtime.NumCPU())

	for _, filePath := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			bar.Describe(filepath.Base(filePath))

			fileIssues, err := processor(engine, filePath)
			_ = bar.Add(1)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error("Error processing file", zap.String("file", filePath), zap.Error(err))
				errs = append(errs, fmt.Errorf("%s: %w", filePath, err))
				return nil
			}
			issues = append(issues, fileIssues...)
			return nil
		})
	}
	_ = g.Wait()
	_ = bar.Finish()

	sortIssues(issues)
	if err := ctx.Err(); err != nil {
		return issues, err
	}
	return issues, errors.Join(errs...)
}

// collectFiles lists the xuan files under root, skipping hidden
// directories.
func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if internal.HasSourceExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func sortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Filename != issues[j].Filename {
			return issues[i].Filename < issues[j].Filename
		}
		return issues[i].Start.Offset < issues[j].Start.Offset
	})
}

func ProcessFile(engine Engine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine Engine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
