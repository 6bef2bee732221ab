package monitor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tdnguyen2412/media-scribe/internal/events"
	"github.com/tdnguyen2412/media-scribe/internal/ledger"
	"github.com/tdnguyen2412/media-scribe/internal/watcher"
)

// Start begins a monitoring session over dir. The passed context covers
// startup only; the session itself lives until Stop is called.
func (m *implMonitor) Start(ctx context.Context, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", abs)
	}

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("monitoring is already running on %s", m.dir)
	}

	sessionCtx, cancel := context.WithCancel(context.Background())

	w, err := watcher.New(abs, m.dispatch, m.cfg.IsMediaFile, m.logger)
	if err != nil {
		cancel()
		m.mu.Unlock()
		return fmt.Errorf("create watcher: %w", err)
	}

	m.running = true
	m.dir = abs
	m.cancel = cancel
	m.watcher = w
	m.sem = newSemaphore(m.cfg.Performance.MaxConcurrent)
	m.mu.Unlock()

	if err := ledger.SaveSession(m.sessionPath(), ledger.Session{Directory: abs}); err != nil {
		m.logger.Warn(ctx, "Failed to save session: %v", err)
	}

	m.logger.Info(ctx, "Monitoring started: %s", abs)
	m.publisher.Publish(events.New(events.TypeLog, "", abs, "monitoring started"))

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := w.Start(sessionCtx); err != nil && err != context.Canceled {
			m.logger.Error(sessionCtx, "Watcher error: %v", err)
			m.publisher.Publish(events.New(events.TypeError, "", abs, err.Error()))
		}
	}()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.scanExisting(sessionCtx, abs)
	}()

	return nil
}

// Stop cancels the watcher and waits for every in-flight transcription.
func (m *implMonitor) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return fmt.Errorf("monitoring is not running")
	}
	cancel := m.cancel
	w := m.watcher
	dir := m.dir
	m.mu.Unlock()

	ctx := context.Background()
	m.logger.Info(ctx, "Stopping monitor, waiting for ongoing transcriptions...")

	cancel()
	if err := w.Stop(); err != nil {
		m.logger.Warn(ctx, "Failed to close watcher: %v", err)
	}
	m.wg.Wait()

	m.mu.Lock()
	m.running = false
	m.dir = ""
	m.cancel = nil
	m.watcher = nil
	m.mu.Unlock()

	m.logger.Info(ctx, "Monitoring stopped")
	m.publisher.Publish(events.New(events.TypeStopped, "", dir, "monitoring stopped"))

	return nil
}

func (m *implMonitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Status{
		Running:    m.running,
		Directory:  m.dir,
		ActiveJobs: m.activeJobs,
		Processed:  m.ledger.Len(),
	}
}

// dispatch queues one media file for transcription, bounded by the
// configured concurrency. It blocks while all worker slots are busy, which
// naturally throttles intake.
func (m *implMonitor) dispatch(ctx context.Context, path string) error {
	if err := m.sem.acquire(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.activeJobs++
	m.mu.Unlock()

	// Detach from the session context: stopping the monitor halts intake
	// but never kills a transcription that already started.
	jobCtx := context.WithoutCancel(ctx)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.sem.release()
		defer func() {
			m.mu.Lock()
			m.activeJobs--
			m.mu.Unlock()
		}()

		if err := m.processor.Process(jobCtx, path); err != nil {
			m.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()

	return nil
}
