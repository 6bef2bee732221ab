package monitor

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/tdnguyen2412/media-scribe/internal/events"
)

// scanExisting walks the tree once at session start and queues every media
// file the ledger has not seen. Already-processed files are filtered here so
// a large archive does not flood the log with skip messages.
func (m *implMonitor) scanExisting(ctx context.Context, dir string) {
	m.logger.Info(ctx, "Scanning directory: %s", dir)
	m.publisher.Publish(events.New(events.TypeScanning, "", dir, "scanning for media files"))

	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !m.cfg.IsMediaFile(path) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil
		}
		if !m.ledger.Contains(abs) {
			found = append(found, abs)
		}
		return nil
	})
	if err != nil && err != context.Canceled {
		m.logger.Error(ctx, "Scan failed: %v", err)
		m.publisher.Publish(events.New(events.TypeError, "", dir, err.Error()))
		return
	}

	if len(found) == 0 {
		m.logger.Info(ctx, "No new media files found in %s", dir)
		m.publisher.Publish(events.New(events.TypeLog, "", dir, "no new files to transcribe"))
		return
	}

	m.logger.Info(ctx, "Found %d new media files", len(found))
	m.publisher.Publish(events.New(events.TypeLog, "", dir,
		fmt.Sprintf("found %d new media files", len(found))))

	for _, path := range found {
		if err := m.dispatch(ctx, path); err != nil {
			// Session was stopped mid-scan
			return
		}
	}
}
