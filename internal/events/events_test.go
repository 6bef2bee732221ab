package events

import (
	"encoding/json"
	"testing"
)

func TestNewStampsTimestamp(t *testing.T) {
	ev := New(TypeProcessing, "job-1", "/media/a.mp3", "transcribing a.mp3")

	if ev.Timestamp.IsZero() {
		t.Error("New() should stamp the event with the current time")
	}
	if ev.Type != TypeProcessing || ev.JobID != "job-1" {
		t.Errorf("event = %+v", ev)
	}
}

func TestEventJSONShape(t *testing.T) {
	ev := New(TypeDone, "", "/media/a.mp3", "transcribed")

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded["type"] != "done" {
		t.Errorf("type = %v, want done", decoded["type"])
	}
	if _, ok := decoded["job_id"]; ok {
		t.Error("empty job_id should be omitted")
	}
}

func TestNopPublisher(t *testing.T) {
	// Must be safe to call with anything
	NopPublisher{}.Publish(Event{})
	NopPublisher{}.Publish(New(TypeError, "x", "y", "z"))
}
