package internal

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Sender identifies who produced a message.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Conversation represents one persisted conversation owned by a user.
// The title starts as a placeholder and is rewritten once by title generation.
type Conversation struct {
	ID        string `json:"id" yaml:"id"`
	UserID    string `json:"userId" yaml:"user_id"`
	Title     string `json:"title" yaml:"title"`
	StartTime string `json:"startTime" yaml:"start_time"` // RFC3339
}

// Message represents one entry in a conversation's ordered message log.
// Messages are append-only; once written they are never rewritten or deleted.
type Message struct {
	ID        string          `json:"id" yaml:"id"`
	Sender    string          `json:"sender" yaml:"sender"`
	Text      string          `json:"text" yaml:"text"`
	ImageURI  string          `json:"imageUri,omitempty" yaml:"image_uri,omitempty"`
	Analysis  *AnalysisResult `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Timestamp int64           `json:"timestamp" yaml:"timestamp"` // Unix milliseconds
}

// AnalysisResult is the structured output of the analysis service attached to
// an assistant message. A nil Analysis on an assistant message means the
// analysis call failed and the message carries the fallback text.
type AnalysisResult struct {
	Response string `json:"response" yaml:"response"`
}

// Workflow represents a pre-approved remediation workflow registered by a user.
type Workflow struct {
	ID          string `json:"id" yaml:"id"`
	UserID      string `json:"userId" yaml:"user_id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Steps       string `json:"steps" yaml:"steps"`
}

// Transcript pairs a conversation with its ordered message log, the unit the
// exporters and the show command work with.
type Transcript struct {
	Conversation *Conversation `json:"conversation" yaml:"conversation"`
	Messages     []*Message    `json:"messages" yaml:"messages"`
}

// GetTimestamp returns the message timestamp as a time.Time.
func (m *Message) GetTimestamp() time.Time {
	return time.Unix(0, m.Timestamp*int64(time.Millisecond))
}

// GetStartTime parses the conversation start time. Returns the zero time if
// the field is empty or malformed.
func (c *Conversation) GetStartTime() time.Time {
	if c.StartTime == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, c.StartTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// EncodeDataURI encodes raw bytes as a base64 data URI with a MIME prefix,
// the format the service contracts expect for image and audio payloads.
func EncodeDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURI splits a data URI into its MIME type and decoded bytes.
func ParseDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := uri[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("data URI missing base64 marker")
	}
	mimeType := rest[:sep]
	if mimeType == "" {
		return "", nil, fmt.Errorf("data URI missing MIME type")
	}
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	return mimeType, data, nil
}
