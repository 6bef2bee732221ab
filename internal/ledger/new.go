package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type implLedger struct {
	filePath string
	mu       sync.Mutex
	set      map[string]struct{}
}

// New loads the processed-file set from filePath, creating parent
// directories as needed. A missing file means an empty set.
func New(filePath string) (Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	l := &implLedger{
		filePath: filePath,
		set:      make(map[string]struct{}),
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("parse ledger file: %w", err)
	}
	for _, p := range paths {
		l.set[p] = struct{}{}
	}

	return l, nil
}
