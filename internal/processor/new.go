package processor

import (
	"github.com/tdnguyen2412/media-scribe/internal/config"
	"github.com/tdnguyen2412/media-scribe/internal/events"
	"github.com/tdnguyen2412/media-scribe/internal/ledger"
	"github.com/tdnguyen2412/media-scribe/internal/logger"
	"github.com/tdnguyen2412/media-scribe/internal/summarizer"
	"github.com/tdnguyen2412/media-scribe/internal/transcriber"
	"github.com/tdnguyen2412/media-scribe/pkg/executor"
)

type implProcessor struct {
	cfg         *config.Config
	transcriber transcriber.Transcriber
	ledger      ledger.Ledger
	summarizer  summarizer.Summarizer // nil when disabled
	executor    executor.Executor
	publisher   events.Publisher
	logger      logger.Logger
}

// New creates a new Processor instance. summ may be nil when summaries are
// disabled.
func New(
	cfg *config.Config,
	tr transcriber.Transcriber,
	led ledger.Ledger,
	summ summarizer.Summarizer,
	exec executor.Executor,
	pub events.Publisher,
	log logger.Logger,
) Processor {
	return &implProcessor{
		cfg:         cfg,
		transcriber: tr,
		ledger:      led,
		summarizer:  summ,
		executor:    exec,
		publisher:   pub,
		logger:      log,
	}
}
