package transcriber

import "context"

// Result holds the text produced by a speech-to-text backend.
type Result struct {
	Text     string
	Language string
}

// Transcriber converts a 16kHz mono WAV file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Result, error)
}
