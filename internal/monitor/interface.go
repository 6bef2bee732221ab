package monitor

import "context"

// Monitor owns the watch-and-transcribe lifecycle for one directory tree.
type Monitor interface {
	// Start begins monitoring dir: existing media is scanned and queued,
	// then new files are picked up as they appear. Returns an error if a
	// session is already running.
	Start(ctx context.Context, dir string) error

	// Stop halts intake and waits for in-flight transcriptions to finish.
	Stop() error

	Status() Status
}

// Status is a snapshot of the monitoring session.
type Status struct {
	Running    bool   `json:"running"`
	Directory  string `json:"directory,omitempty"`
	ActiveJobs int    `json:"active_jobs"`
	Processed  int    `json:"processed"`
}
