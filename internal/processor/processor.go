package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/tdnguyen2412/media-scribe/internal/events"
)

// Process transcribes a single media file end to end: dedupe against the
// ledger, extract audio, call the backend, write the transcript next to the
// media, then mark the file processed. A failed file is not marked, so it is
// retried on the next scan.
func (p *implProcessor) Process(ctx context.Context, mediaPath string) error {
	abs, err := filepath.Abs(mediaPath)
	if err != nil {
		return fmt.Errorf("resolve media path: %w", err)
	}
	name := filepath.Base(abs)

	if p.ledger.Contains(abs) {
		p.logger.Debug(ctx, "Skipped (already processed): %s", name)
		p.publisher.Publish(events.New(events.TypeSkipped, "", abs, "already processed"))
		return nil
	}

	jobID := uuid.NewString()
	startTime := time.Now()

	p.logger.Info(ctx, "Starting transcription [%s]: %s", jobID, abs)
	p.publisher.Publish(events.New(events.TypeProcessing, jobID, abs, "transcribing "+name))

	audioPath, err := p.extractAudio(ctx, abs)
	if err != nil {
		p.publisher.Publish(events.New(events.TypeError, jobID, abs, err.Error()))
		return fmt.Errorf("extract audio: %w", err)
	}
	defer p.cleanupTempAudio(ctx, audioPath)

	result, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		p.publisher.Publish(events.New(events.TypeError, jobID, abs, err.Error()))
		return fmt.Errorf("transcribe: %w", err)
	}

	transcriptPath, err := p.writeTranscript(abs, result.Text)
	if err != nil {
		p.publisher.Publish(events.New(events.TypeError, jobID, abs, err.Error()))
		return fmt.Errorf("write transcript: %w", err)
	}

	if err := p.ledger.MarkProcessed(abs); err != nil {
		p.publisher.Publish(events.New(events.TypeError, jobID, abs, err.Error()))
		return fmt.Errorf("mark processed: %w", err)
	}

	if p.summarizer != nil {
		if err := p.summarizer.Summarize(ctx, transcriptPath); err != nil {
			p.logger.Warn(ctx, "Failed to summarize %s: %v", name, err)
		}
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "Transcribed [%s]: %s -> %s (%s)", jobID, name, transcriptPath, duration)
	p.publisher.Publish(events.New(events.TypeDone, jobID, abs,
		fmt.Sprintf("transcribed in %s", duration.Round(time.Second))))

	return nil
}
