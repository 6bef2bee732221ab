package processor

import (
	"context"
	"os"
	"path/filepath"
)

// cleanupTempAudio removes the per-file extraction directory, logs warning
// if it fails
func (p *implProcessor) cleanupTempAudio(ctx context.Context, audioPath string) {
	dir := filepath.Dir(audioPath)
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}
