package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Contains reports whether path was already transcribed. Relative paths are
// resolved first; the set only ever holds absolute paths.
func (l *implLedger) Contains(path string) bool {
	abs := absolutize(path)

	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.set[abs]
	return ok
}

// MarkProcessed records path as transcribed and persists the whole set.
// The write goes through a temp file and rename so a crash mid-write never
// leaves a truncated ledger behind. If the write fails the in-memory set is
// rolled back, so a file is only ever remembered once it is on disk.
func (l *implLedger) MarkProcessed(path string) error {
	abs := absolutize(path)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.set[abs]; ok {
		return nil
	}

	l.set[abs] = struct{}{}
	if err := l.persistLocked(); err != nil {
		delete(l.set, abs)
		return err
	}
	return nil
}

func (l *implLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.set)
}

func (l *implLedger) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	paths := make([]string, 0, len(l.set))
	for p := range l.set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (l *implLedger) persistLocked() error {
	paths := make([]string, 0, len(l.set))
	for p := range l.set {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	data, err := json.Marshal(paths)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	tmp := l.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write ledger temp file: %w", err)
	}
	if err := os.Rename(tmp, l.filePath); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}

	return nil
}

func absolutize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
