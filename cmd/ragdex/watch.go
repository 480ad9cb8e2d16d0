package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkondo/ragdex"
	"github.com/mkondo/ragdex/internal/scanner"
)

var flagDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch a source tree and index changes",
	Long:  "Performs a full index, then watches the tree and reindexes files as they change. Removed files are dropped from the index. Runs until interrupted.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&flagDebounce, "debounce", 500*time.Millisecond, "quiet period before reindexing changed files")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	targetDir, err := resolveTargetDir(args, cfg)
	if err != nil {
		return err
	}

	repoRoot := findRepoRoot(targetDir)
	dbPath := resolveDBPath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dbPath), err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	engine, err := newEngine(dbPath, cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Full pass first so the watcher only has incremental work.
	if err := engine.IndexDirectory(ctx, targetDir); err != nil {
		return fmt.Errorf("initial index: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Watching %s (ctrl-c to stop)\n", targetDir)

	w, err := newDirWatcher(targetDir, engine, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	return w.Run(ctx, flagDebounce)
}

// dirWatcher reindexes files as fsnotify reports changes. Events are
// debounced per batch so editors that write multiple times in quick
// succession trigger one reindex.
type dirWatcher struct {
	watcher *fsnotify.Watcher
	engine  *ragdex.Engine
	logger  *zap.Logger

	mu      sync.Mutex
	changed map[string]bool
	removed map[string]bool
}

// newDirWatcher watches root and every non-excluded subdirectory.
func newDirWatcher(root string, engine *ragdex.Engine, logger *zap.Logger) (*dirWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &dirWatcher{
		watcher: watcher,
		engine:  engine,
		logger:  logger,
		changed: make(map[string]bool),
		removed: make(map[string]bool),
	}
	if err := w.addTree(root); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *dirWatcher) Close() error {
	return w.watcher.Close()
}

// addTree registers root and its subdirectories with the watcher,
// honoring the scanner's directory exclusions.
func (w *dirWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && scanner.SkipDirName(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// Run processes events until ctx is canceled.
func (w *dirWatcher) Run(ctx context.Context, debounce time.Duration) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				timer.Reset(debounce)
			}
		case <-timer.C:
			if err := w.flush(ctx); err != nil {
				w.logger.Error("reindex failed", zap.Error(err))
			}
		}
	}
}

// handleEvent records the event for the next flush. Returns true when the
// debounce timer should be reset.
func (w *dirWatcher) handleEvent(event fsnotify.Event) bool {
	path := event.Name

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !scanner.SkipDirName(filepath.Base(path)) {
				if err := w.addTree(path); err != nil {
					w.logger.Warn("watching new directory", zap.String("path", path), zap.Error(err))
				}
			}
			return false
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		w.removed[path] = true
		delete(w.changed, path)
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		w.changed[path] = true
		delete(w.removed, path)
	default:
		return false
	}
	return true
}

// flush applies the accumulated changes: removed files drop out of the
// index, changed files are reindexed through the normal pipeline.
func (w *dirWatcher) flush(ctx context.Context) error {
	w.mu.Lock()
	changed := make([]string, 0, len(w.changed))
	for path := range w.changed {
		changed = append(changed, path)
	}
	removed := make([]string, 0, len(w.removed))
	for path := range w.removed {
		removed = append(removed, path)
	}
	w.changed = make(map[string]bool)
	w.removed = make(map[string]bool)
	w.mu.Unlock()

	for _, path := range removed {
		if err := w.engine.DeleteFile(path); err != nil {
			return err
		}
	}
	if len(changed) > 0 {
		if err := w.engine.IndexFiles(ctx, changed); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Reindexed %d file(s)\n", len(changed))
	}
	return nil
}
