package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// extractAudio converts a media file to 16kHz mono WAV in the temp
// directory. This format is what every backend accepts.
func (p *implProcessor) extractAudio(ctx context.Context, mediaPath string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	// Isolated temp dir per file so same-named media in different
	// directories can be processed concurrently
	tempDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "extract-*")
	if err != nil {
		return "", fmt.Errorf("create extract temp dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	audioPath := filepath.Join(tempDir, base+"_temp.wav")

	p.logger.Debug(ctx, "Extracting audio: %s -> %s", mediaPath, audioPath)

	// -vn: No video (audio only)
	// -ar 16000: Sample rate 16kHz (optimal for Whisper)
	// -ac 1: Mono channel
	// -c:a pcm_s16le: PCM 16-bit little-endian (uncompressed)
	// -y: Overwrite output file if exists
	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		os.RemoveAll(tempDir)
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return audioPath, nil
}
