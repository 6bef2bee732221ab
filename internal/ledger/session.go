package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Session remembers the last watched directory so monitoring can resume
// after a restart.
type Session struct {
	Directory string    `json:"directory"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoadSession reads the session file. A missing file yields a zero session.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parse session file: %w", err)
	}

	return s, nil
}

// SaveSession writes the session file via temp file and rename.
func SaveSession(path string, s Session) error {
	s.UpdatedAt = time.Now()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write session temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	return nil
}
