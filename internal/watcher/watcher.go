package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tdnguyen2412/media-scribe/internal/logger"
)

type implWatcher struct {
	rootDir     string
	handler     EventHandler
	isMedia     MediaMatcher
	logger      logger.Logger
	watcher     *fsnotify.Watcher
	settleDelay time.Duration
}

// Start begins monitoring the directory tree for new media files. It blocks
// until the context is cancelled or the watcher breaks.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.rootDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.handleCreate(ctx, event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) handleCreate(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		w.logger.Debug(ctx, "Ignoring vanished path: %s", path)
		return
	}

	if info.IsDir() {
		// fsnotify watches are non-recursive, so a freshly created
		// directory (and anything dropped into it before the watch was
		// in place) needs explicit handling.
		if err := w.watchTree(path); err != nil {
			w.logger.Error(ctx, "Failed to watch new directory %s: %v", path, err)
			return
		}
		w.logger.Info(ctx, "Watching new directory: %s", path)
		w.scanDir(ctx, path)
		return
	}

	if !w.isMedia(path) {
		w.logger.Debug(ctx, "Ignoring non-media file: %s", path)
		return
	}

	w.logger.Info(ctx, "New media detected: %s", path)

	// Small delay to ensure file is fully written
	select {
	case <-time.After(w.settleDelay):
	case <-ctx.Done():
		return
	}

	if err := w.handler(ctx, path); err != nil {
		w.logger.Error(ctx, "Failed to handle %s: %v", path, err)
	}
}

// watchTree adds path and all directories below it to the watch list.
func (w *implWatcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// scanDir hands over media files that landed in dir before its watch existed.
func (w *implWatcher) scanDir(ctx context.Context, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Error(ctx, "Failed to scan %s: %v", dir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !w.isMedia(path) {
			continue
		}
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to handle %s: %v", path, err)
		}
	}
}
