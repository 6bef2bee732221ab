package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tdnguyen2412/media-scribe/internal/logger"
)

// New creates a Watcher that monitors rootDir and every directory below it.
func New(rootDir string, handler EventHandler, isMedia MediaMatcher, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &implWatcher{
		rootDir:     rootDir,
		handler:     handler,
		isMedia:     isMedia,
		logger:      log,
		watcher:     fsw,
		settleDelay: 500 * time.Millisecond,
	}

	if err := w.watchTree(rootDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch tree: %w", err)
	}

	return w, nil
}
