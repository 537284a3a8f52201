package export

import (
	"bytes"
	"testing"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	"github.com/aqsawaikar-droid/CloudWhisper/testutil"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	transcript := testutil.CreateTestTranscript("conv-1")

	var buf bytes.Buffer
	exporter := &YAMLExporter{}
	if err := exporter.Export(transcript, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded internal.Transcript
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Export() output is not valid YAML: %v", err)
	}
	if decoded.Conversation.Title != "Database Connection Failures" {
		t.Errorf("Title = %q, want the original title", decoded.Conversation.Title)
	}
	if len(decoded.Messages) != 2 {
		t.Fatalf("Decoded %d messages, want 2", len(decoded.Messages))
	}
	if decoded.Messages[0].Sender != internal.SenderUser {
		t.Errorf("Messages[0].Sender = %q, want %q", decoded.Messages[0].Sender, internal.SenderUser)
	}
	if decoded.Messages[1].Analysis == nil || decoded.Messages[1].Analysis.Response == "" {
		t.Error("Assistant message analysis must survive export")
	}
}
