package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tdnguyen2412/media-scribe/internal/config"
	"github.com/tdnguyen2412/media-scribe/internal/logger"
	"github.com/tdnguyen2412/media-scribe/pkg/executor"
)

type whisperTranscriber struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

func newWhisper(cfg *config.Config, exec executor.Executor, log logger.Logger) Transcriber {
	return &whisperTranscriber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

// Transcribe runs the whisper.cpp CLI against audioPath and reads back the
// plain-text output it writes next to the audio file.
func (w *whisperTranscriber) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	w.logger.Info(ctx, "Starting whisper transcription with %d threads: %s",
		w.cfg.Whisper.Threads, audioPath)

	// -m: Model path
	// -f: Input audio file
	// -otxt: Output plain text (no timestamps)
	// -l: Force language (prevents hallucination)
	// -t: Number of threads
	// --output-file: Output file prefix (whisper appends .txt)
	args := []string{
		"-m", w.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", w.cfg.Transcriber.Language,
		"-t", strconv.Itoa(w.cfg.Whisper.Threads),
		"--output-file", outputPrefix,
	}
	if !w.cfg.Whisper.UseGPU {
		args = append(args, "-ng")
	}

	if _, err := w.executor.Execute(ctx, w.cfg.Whisper.BinaryPath, args...); err != nil {
		return Result{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return Result{}, fmt.Errorf("read whisper output: %w", err)
	}
	defer os.Remove(txtPath)

	text := strings.TrimSpace(string(data))
	w.logger.Info(ctx, "Whisper transcription completed: %s (%d chars)", audioPath, len(text))

	return Result{Text: text, Language: w.cfg.Transcriber.Language}, nil
}
