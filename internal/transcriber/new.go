package transcriber

import (
	"fmt"

	"github.com/tdnguyen2412/media-scribe/internal/config"
	"github.com/tdnguyen2412/media-scribe/internal/logger"
	"github.com/tdnguyen2412/media-scribe/pkg/executor"
)

// New selects a transcription backend based on configuration.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Transcriber.Backend {
	case config.BackendWhisper:
		return newWhisper(cfg, exec, log), nil
	case config.BackendOpenAI:
		return newOpenAI(cfg, log), nil
	case config.BackendGoogle:
		return newGoogle(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown transcriber backend %q", cfg.Transcriber.Backend)
	}
}
