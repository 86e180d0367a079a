package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnolang/xuan/internal/types"
)

const settleDelay = 100 * time.Millisecond

// ReportFunc receives the issues of a file checked by the watcher.
type ReportFunc func(filename string, issues []tt.Issue)

// Watcher re-checks xuan files whenever they are written.
type Watcher struct {
	engine  *Engine
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	dirs    []string
	report  ReportFunc

	mu       sync.Mutex
	watching bool
	done     chan struct{}
}

// NewWatcher creates a watcher over dirs and their subdirectories. A nil
// report logs the issues.
func NewWatcher(engine *Engine, logger *zap.Logger, dirs []string, report ReportFunc) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}

	w := &Watcher{
		engine:  engine,
		logger:  logger,
		watcher: fw,
		dirs:    dirs,
		report:  report,
	}
	if w.report == nil {
		w.report = w.logIssues
	}
	return w, nil
}

func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching {
		return errors.New("already watching")
	}

	for _, dir := range w.dirs {
		if err := w.addTree(dir); err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.watching = true
	w.done = make(chan struct{})
	go w.watchLoop(w.done)
	return nil
}

// Stop closes the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.watching {
		w.mu.Unlock()
		return errors.New("not watching")
	}
	w.watching = false
	done := w.done
	w.mu.Unlock()

	err := w.watcher.Close()
	<-done
	return err
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) watchLoop(done chan struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if err := w.addTree(event.Name); err != nil {
			w.logger.Debug("Error watching new path", zap.String("path", event.Name), zap.Error(err))
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !HasSourceExtension(event.Name) {
		return
	}

	// let a burst of writes settle into a single check
	time.Sleep(settleDelay)

	issues, err := w.engine.Run(event.Name)
	if err != nil {
		w.logger.Error("Error checking file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.report(event.Name, issues)
}

func (w *Watcher) logIssues(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		w.logger.Info("No issues found", zap.String("file", filename))
		return
	}

	w.logger.Info("Found issues", zap.String("file", filename), zap.Int("count", len(issues)))
	for _, issue := range issues {
		w.logger.Info(issue.Message,
			zap.String("rule", issue.Rule),
			zap.String("severity", issue.Severity.String()),
			zap.Stringer("position", issue.Start),
		)
	}
}

// SourceExtension is the file extension of xuan source files.
const SourceExtension = ".xuan"

func HasSourceExtension(path string) bool {
	return filepath.Ext(path) == SourceExtension
}
