package summarizer

import (
	"sync"

	"github.com/tdnguyen2412/media-scribe/internal/config"
	"github.com/tdnguyen2412/media-scribe/internal/logger"
)

type implSummarizer struct {
	apiKeys    []string
	model      string
	docxExport bool
	logger     logger.Logger

	// Guards currentKey: several transcription workers can finish and
	// summarize at the same time.
	mu         sync.Mutex
	currentKey int
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
func New(cfg *config.Config, log logger.Logger) Summarizer {
	return &implSummarizer{
		apiKeys:    cfg.Summarizer.APIKeys,
		model:      cfg.Summarizer.Model,
		docxExport: cfg.Summarizer.DocxExport,
		logger:     log,
	}
}
