package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
	"github.com/aqsawaikar-droid/CloudWhisper/testutil"
)

func TestJSONLExporter_Export(t *testing.T) {
	transcript := testutil.CreateTestTranscript("conv-1")
	transcript.Messages[0].ImageURI = "data:image/png;base64,iVBOR"

	var buf bytes.Buffer
	exporter := &JSONLExporter{}
	if err := exporter.Export(transcript, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Export() produced %d lines, want one per message (2)", len(lines))
	}

	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("Line 1 is not valid JSON: %v", err)
	}
	if first["sender"] != internal.SenderUser {
		t.Errorf("Line 1 sender = %v, want %q", first["sender"], internal.SenderUser)
	}
	if first["imageUri"] != "data:image/png;base64,iVBOR" {
		t.Errorf("Line 1 imageUri = %v, want the attached image", first["imageUri"])
	}

	var second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("Line 2 is not valid JSON: %v", err)
	}
	if second["sender"] != internal.SenderAssistant {
		t.Errorf("Line 2 sender = %v, want %q", second["sender"], internal.SenderAssistant)
	}
	if _, ok := second["analysis"]; !ok {
		t.Error("Line 2 must carry the analysis payload")
	}
	if _, ok := second["imageUri"]; ok {
		t.Error("Line 2 must omit imageUri when the message has none")
	}
}

func TestJSONLExporter_EmptyTranscript(t *testing.T) {
	transcript := &internal.Transcript{
		Conversation: &internal.Conversation{ID: "empty"},
	}

	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(transcript, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Export() of empty transcript wrote %q, want nothing", buf.String())
	}
}
