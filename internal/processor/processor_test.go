package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tdnguyen2412/media-scribe/internal/config"
	"github.com/tdnguyen2412/media-scribe/internal/events"
	"github.com/tdnguyen2412/media-scribe/internal/ledger"
	"github.com/tdnguyen2412/media-scribe/internal/logger"
	"github.com/tdnguyen2412/media-scribe/internal/transcriber"
)

// stubExecutor stands in for ffmpeg: it creates the output file named by the
// last argument.
type stubExecutor struct{}

func (stubExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	if len(args) > 0 {
		if err := os.WriteFile(args[len(args)-1], []byte("RIFF"), 0644); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (s stubExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return s.Execute(ctx, name, args...)
}

type stubTranscriber struct {
	text string
	err  error
}

func (s stubTranscriber) Transcribe(ctx context.Context, audioPath string) (transcriber.Result, error) {
	if s.err != nil {
		return transcriber.Result{}, s.err
	}
	return transcriber.Result{Text: s.text, Language: "en"}, nil
}

// capturePublisher records every published event.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capturePublisher) Publish(ev events.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *capturePublisher) types() []events.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ts []events.Type
	for _, ev := range c.events {
		ts = append(ts, ev.Type)
	}
	return ts
}

func newTestProcessor(t *testing.T, tr transcriber.Transcriber, pub events.Publisher) (Processor, ledger.Ledger) {
	t.Helper()

	stateDir := t.TempDir()
	cfg := &config.Config{
		Transcriber: config.TranscriberConfig{Backend: config.BackendGoogle},
		Paths: config.PathsConfig{
			StateDir: stateDir,
			Temp:     filepath.Join(stateDir, "temp"),
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	led, err := ledger.New(filepath.Join(stateDir, "processed_files.json"))
	if err != nil {
		t.Fatalf("ledger.New() error = %v", err)
	}

	return New(cfg, tr, led, nil, stubExecutor{}, pub, logger.New("error")), led
}

func writeMedia(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("media bytes"), 0644); err != nil {
		t.Fatalf("write media: %v", err)
	}
	return path
}

func TestProcessWritesTranscript(t *testing.T) {
	pub := &capturePublisher{}
	proc, led := newTestProcessor(t, stubTranscriber{text: "the quick brown fox"}, pub)

	media := writeMedia(t, "lecture.mp4")
	if err := proc.Process(context.Background(), media); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	transcriptPath := filepath.Join(filepath.Dir(media), "Transcriptions", "lecture_transcription.txt")
	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		t.Fatalf("transcript not written: %v", err)
	}

	content := string(data)
	for _, want := range []string{
		"File Name: lecture.mp4",
		"File Path: " + media,
		"Transcription:\nthe quick brown fox",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("transcript missing %q:\n%s", want, content)
		}
	}

	if !led.Contains(media) {
		t.Error("file should be marked processed after a successful run")
	}

	got := pub.types()
	want := []events.Type{events.TypeProcessing, events.TypeDone}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProcessSkipsAlreadyProcessed(t *testing.T) {
	pub := &capturePublisher{}
	proc, led := newTestProcessor(t, stubTranscriber{text: "once"}, pub)

	media := writeMedia(t, "talk.mp3")
	if err := led.MarkProcessed(media); err != nil {
		t.Fatalf("MarkProcessed() error = %v", err)
	}

	if err := proc.Process(context.Background(), media); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(media), "Transcriptions")); !os.IsNotExist(err) {
		t.Error("skipped file should not produce a transcript")
	}

	got := pub.types()
	if len(got) != 1 || got[0] != events.TypeSkipped {
		t.Errorf("events = %v, want one skipped event", got)
	}
}

func TestProcessTranscriberFailureNotMarked(t *testing.T) {
	pub := &capturePublisher{}
	proc, led := newTestProcessor(t, stubTranscriber{err: fmt.Errorf("model exploded")}, pub)

	media := writeMedia(t, "broken.wav")
	if err := proc.Process(context.Background(), media); err == nil {
		t.Fatal("Process() should propagate transcriber errors")
	}

	if led.Contains(media) {
		t.Error("failed file must not be marked processed, it should retry on the next scan")
	}

	got := pub.types()
	if len(got) != 2 || got[1] != events.TypeError {
		t.Errorf("events = %v, want processing then error", got)
	}
}

func TestProcessCleansUpTempAudio(t *testing.T) {
	proc, _ := newTestProcessor(t, stubTranscriber{text: "done"}, events.NopPublisher{})

	media := writeMedia(t, "clip.mov")
	if err := proc.Process(context.Background(), media); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	p := proc.(*implProcessor)
	entries, err := os.ReadDir(p.cfg.Paths.Temp)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir should be empty after processing, has %d entries", len(entries))
	}
}
