package ledger

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestNewEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_files.json")

	l, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if l.Contains("/some/file.mp3") {
		t.Error("empty ledger should not contain anything")
	}
}

func TestMarkProcessedAndContains(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_files.json")

	l, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	file := filepath.Join(t.TempDir(), "talk.mp3")
	if err := l.MarkProcessed(file); err != nil {
		t.Fatalf("MarkProcessed() error = %v", err)
	}

	if !l.Contains(file) {
		t.Error("Contains() = false after MarkProcessed")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestMarkProcessedIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_files.json")

	l, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for range 3 {
		if err := l.MarkProcessed("/media/a.wav"); err != nil {
			t.Fatalf("MarkProcessed() error = %v", err)
		}
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestLedgerSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_files.json")

	l, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := l.MarkProcessed("/media/a.wav"); err != nil {
		t.Fatalf("MarkProcessed() error = %v", err)
	}
	if err := l.MarkProcessed("/media/b.mp4"); err != nil {
		t.Fatalf("MarkProcessed() error = %v", err)
	}

	// Simulate restart by reloading from disk
	reloaded, err := New(path)
	if err != nil {
		t.Fatalf("New() after restart error = %v", err)
	}
	if reloaded.Len() != 2 {
		t.Errorf("Len() = %d after restart, want 2", reloaded.Len())
	}
	if !reloaded.Contains("/media/a.wav") || !reloaded.Contains("/media/b.mp4") {
		t.Error("reloaded ledger lost entries")
	}
}

func TestLedgerResolvesRelativePaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_files.json")

	l, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := l.MarkProcessed("talk.mp3"); err != nil {
		t.Fatalf("MarkProcessed() error = %v", err)
	}

	abs, err := filepath.Abs("talk.mp3")
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}
	if !l.Contains(abs) {
		t.Error("ledger should resolve relative paths to absolute before storing")
	}
	for _, p := range l.Paths() {
		if !filepath.IsAbs(p) {
			t.Errorf("Paths() returned non-absolute path %q", p)
		}
	}
}

// A file must only count as processed once it is durably recorded; a failed
// write would otherwise skip the file forever while the next restart forgets
// it was ever seen.
func TestMarkProcessedRollsBackOnWriteFailure(t *testing.T) {
	// Point the ledger into a directory that does not exist so the temp
	// file write fails.
	l := &implLedger{
		filePath: filepath.Join(t.TempDir(), "missing", "processed_files.json"),
		set:      make(map[string]struct{}),
	}

	if err := l.MarkProcessed("/media/talk.mp3"); err == nil {
		t.Fatal("MarkProcessed() expected error when ledger dir is missing")
	}
	if l.Contains("/media/talk.mp3") {
		t.Error("file still marked processed after failed ledger write")
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d after failed write, want 0", l.Len())
	}
}

func TestLedgerCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_files.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := New(path); err == nil {
		t.Error("New() should fail on a corrupt ledger file")
	}
}

func TestLedgerConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_files.json")

	l, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			file := filepath.Join("/media", "clip"+string(rune('a'+n))+".mp3")
			if err := l.MarkProcessed(file); err != nil {
				t.Errorf("MarkProcessed() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if l.Len() != 10 {
		t.Errorf("Len() = %d, want 10", l.Len())
	}
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	if err := SaveSession(path, Session{Directory: "/media/watch"}); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	s, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if s.Directory != "/media/watch" {
		t.Errorf("Directory = %q, want /media/watch", s.Directory)
	}
	if s.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set by SaveSession")
	}
}

func TestLoadSessionMissingFile(t *testing.T) {
	s, err := LoadSession(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if s.Directory != "" {
		t.Errorf("Directory = %q, want empty", s.Directory)
	}
}
