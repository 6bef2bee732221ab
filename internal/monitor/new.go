package monitor

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/tdnguyen2412/media-scribe/internal/config"
	"github.com/tdnguyen2412/media-scribe/internal/events"
	"github.com/tdnguyen2412/media-scribe/internal/ledger"
	"github.com/tdnguyen2412/media-scribe/internal/logger"
	"github.com/tdnguyen2412/media-scribe/internal/processor"
	"github.com/tdnguyen2412/media-scribe/internal/watcher"
)

type implMonitor struct {
	cfg       *config.Config
	processor processor.Processor
	ledger    ledger.Ledger
	publisher events.Publisher
	logger    logger.Logger

	mu         sync.Mutex
	running    bool
	dir        string
	cancel     context.CancelFunc
	watcher    watcher.Watcher
	wg         sync.WaitGroup
	sem        *semaphore
	activeJobs int
}

// New creates a new Monitor instance
func New(
	cfg *config.Config,
	proc processor.Processor,
	led ledger.Ledger,
	pub events.Publisher,
	log logger.Logger,
) Monitor {
	return &implMonitor{
		cfg:       cfg,
		processor: proc,
		ledger:    led,
		publisher: pub,
		logger:    log,
	}
}

func (m *implMonitor) sessionPath() string {
	return filepath.Join(m.cfg.Paths.StateDir, "session.json")
}
