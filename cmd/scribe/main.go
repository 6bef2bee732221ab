package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tdnguyen2412/media-scribe/internal/config"
	"github.com/tdnguyen2412/media-scribe/internal/ledger"
	"github.com/tdnguyen2412/media-scribe/internal/logger"
	"github.com/tdnguyen2412/media-scribe/internal/monitor"
	"github.com/tdnguyen2412/media-scribe/internal/processor"
	"github.com/tdnguyen2412/media-scribe/internal/server"
	"github.com/tdnguyen2412/media-scribe/internal/summarizer"
	"github.com/tdnguyen2412/media-scribe/internal/transcriber"
	"github.com/tdnguyen2412/media-scribe/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Secrets live in .env during development; missing file is fine
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Media Scribe")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Transcription backend: %s", cfg.Transcriber.Backend)
	log.Info(ctx, "Max concurrent transcriptions: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	led, err := ledger.New(filepath.Join(cfg.Paths.StateDir, "processed_files.json"))
	if err != nil {
		log.Error(ctx, "Failed to load ledger: %v", err)
		os.Exit(1)
	}
	log.Info(ctx, "Ledger loaded: %d files already processed", led.Len())

	exec := executor.New()
	trans, err := transcriber.New(cfg, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to create transcriber: %v", err)
		os.Exit(1)
	}

	var summ summarizer.Summarizer
	if cfg.Summarizer.Enabled {
		summ = summarizer.New(cfg, log)
		log.Info(ctx, "Summarizer enabled: %s", cfg.Summarizer.Model)
	}

	hub := server.NewHub(log)
	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()
	go hub.Run(hubCtx)

	proc := processor.New(cfg, trans, led, summ, exec, hub, log)
	mon := monitor.New(cfg, proc, led, hub, log)
	srv := server.New(cfg, mon, led, hub, log)

	// Resume the previous session's directory if configured
	if cfg.Session.Resume {
		s, err := ledger.LoadSession(filepath.Join(cfg.Paths.StateDir, "session.json"))
		if err != nil {
			log.Warn(ctx, "Failed to load session: %v", err)
		} else if s.Directory != "" {
			log.Info(ctx, "Resuming previous session: %s", s.Directory)
			if err := mon.Start(ctx, s.Directory); err != nil {
				log.Warn(ctx, "Failed to resume session: %v", err)
			}
		}
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Media Scribe is ready!")
	log.Info(ctx, "Control panel: http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")

	if mon.Status().Running {
		if err := mon.Stop(); err != nil {
			log.Warn(ctx, "Failed to stop monitor: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Server forced to shutdown: %v", err)
	}

	log.Info(ctx, "Media Scribe stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.StateDir,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
