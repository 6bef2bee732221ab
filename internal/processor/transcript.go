package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// transcriptionsFolder is created next to each media file.
const transcriptionsFolder = "Transcriptions"

// writeTranscript saves the transcript to a Transcriptions subfolder in the
// media file's directory, keeping the header layout transcripts have always
// had: file name, absolute path, then the text.
func (p *implProcessor) writeTranscript(mediaPath, text string) (string, error) {
	dir := filepath.Join(filepath.Dir(mediaPath), transcriptionsFolder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create transcriptions folder: %w", err)
	}

	name := filepath.Base(mediaPath)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	transcriptPath := filepath.Join(dir, base+"_transcription.txt")

	var sb strings.Builder
	fmt.Fprintf(&sb, "File Name: %s\n", name)
	fmt.Fprintf(&sb, "File Path: %s\n\n", mediaPath)
	sb.WriteString("Transcription:\n")
	sb.WriteString(text)

	if err := os.WriteFile(transcriptPath, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("write transcript file: %w", err)
	}

	return transcriptPath, nil
}
