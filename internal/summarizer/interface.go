package summarizer

import "context"

// Summarizer turns a finished transcript into an LLM-generated markdown
// summary (and optionally a docx copy of the transcript) next to it.
type Summarizer interface {
	Summarize(ctx context.Context, transcriptPath string) error
}
