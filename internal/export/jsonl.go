package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
)

// JSONLExporter exports transcripts in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a transcript to JSONL format
func (e *JSONLExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range transcript.Messages {
		obj := map[string]interface{}{
			"sender":    msg.Sender,
			"text":      msg.Text,
			"timestamp": msg.GetTimestamp().Format("2006-01-02T15:04:05Z07:00"),
		}

		if msg.ImageURI != "" {
			obj["imageUri"] = msg.ImageURI
		}
		if msg.Analysis != nil {
			obj["analysis"] = msg.Analysis
		}

		// Encode to single line
		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
