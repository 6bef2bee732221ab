package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/tdnguyen2412/media-scribe/internal/config"
	"github.com/tdnguyen2412/media-scribe/internal/logger"
)

type googleTranscriber struct {
	sampleRate int
	language   string
	logger     logger.Logger

	// The Speech client is created once on first use and reused for the
	// lifetime of the process.
	newClient  func(ctx context.Context) (*speech.Client, error)
	clientOnce sync.Once
	client     *speech.Client
	clientErr  error
}

func newGoogle(cfg *config.Config, log logger.Logger) Transcriber {
	return &googleTranscriber{
		sampleRate: cfg.Google.SampleRate,
		language:   cfg.Transcriber.Language,
		logger:     log,
		newClient: func(ctx context.Context) (*speech.Client, error) {
			return speech.NewClient(ctx)
		},
	}
}

func (g *googleTranscriber) speechClient(ctx context.Context) (*speech.Client, error) {
	g.clientOnce.Do(func() {
		// The client outlives any single transcription job
		g.client, g.clientErr = g.newClient(context.WithoutCancel(ctx))
	})
	return g.client, g.clientErr
}

// Transcribe sends the WAV content to Google Cloud Speech-to-Text.
// Credentials come from the standard GOOGLE_APPLICATION_CREDENTIALS flow.
func (g *googleTranscriber) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	client, err := g.speechClient(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("create speech client: %w", err)
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("read audio file: %w", err)
	}

	g.logger.Info(ctx, "Sending %d bytes to Google Speech-to-Text", len(data))

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: int32(g.sampleRate),
			LanguageCode:    g.languageCode(),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("recognize: %w", err)
	}

	var sb strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(result.Alternatives[0].Transcript)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Result{}, fmt.Errorf("no speech detected in %s", audioPath)
	}

	return Result{Text: text, Language: g.language}, nil
}

// languageCode widens bare ISO-639 codes to the BCP-47 form Google expects.
func (g *googleTranscriber) languageCode() string {
	if strings.Contains(g.language, "-") {
		return g.language
	}
	switch g.language {
	case "en":
		return "en-US"
	case "vi":
		return "vi-VN"
	case "ja":
		return "ja-JP"
	default:
		return g.language
	}
}
