package processor

import "context"

// Processor defines the interface for transcribing a single media file
type Processor interface {
	Process(ctx context.Context, mediaPath string) error
}
