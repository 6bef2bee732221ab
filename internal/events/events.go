package events

import "time"

// Type identifies what happened to a file or to the monitoring session.
type Type string

const (
	TypeLog        Type = "log"
	TypeScanning   Type = "scanning"
	TypeProcessing Type = "processing"
	TypeSkipped    Type = "skipped"
	TypeDone       Type = "done"
	TypeError      Type = "error"
	TypeStopped    Type = "stopped"
)

// Event is a progress notification pushed to the control panel.
type Event struct {
	Type      Type      `json:"type"`
	JobID     string    `json:"job_id,omitempty"`
	File      string    `json:"file,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers events to whoever is listening.
type Publisher interface {
	Publish(ev Event)
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

// New builds an event stamped with the current time.
func New(t Type, jobID, file, message string) Event {
	return Event{
		Type:      t,
		JobID:     jobID,
		File:      file,
		Message:   message,
		Timestamp: time.Now(),
	}
}
