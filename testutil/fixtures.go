package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/aqsawaikar-droid/CloudWhisper/internal"
)

// SeedConversation creates a conversation with the given title for a user
func SeedConversation(t *testing.T, store internal.ConversationStore, userID, title string) *internal.Conversation {
	t.Helper()
	conv, err := store.CreateConversation(context.Background(), userID, title)
	if err != nil {
		t.Fatalf("Failed to seed conversation: %v", err)
	}
	return conv
}

// SeedMessage appends a message to a conversation and returns it
func SeedMessage(t *testing.T, store internal.ConversationStore, conversationID, id, sender, text string, timestamp int64) *internal.Message {
	t.Helper()
	msg := &internal.Message{
		ID:        id,
		Sender:    sender,
		Text:      text,
		Timestamp: timestamp,
	}
	if err := store.AppendMessage(context.Background(), conversationID, msg); err != nil {
		t.Fatalf("Failed to seed message: %v", err)
	}
	return msg
}

// SeedExchange appends a user/assistant message pair to a conversation
func SeedExchange(t *testing.T, store internal.ConversationStore, conversationID, question, answer string) {
	t.Helper()
	base := time.Now().UnixMilli()
	SeedMessage(t, store, conversationID, "msg-"+conversationID+"-u", internal.SenderUser, question, base)
	SeedMessage(t, store, conversationID, "msg-"+conversationID+"-a", internal.SenderAssistant, answer, base+1)
}

// CreateTestTranscript builds a transcript with a user/assistant exchange
func CreateTestTranscript(id string) *internal.Transcript {
	return &internal.Transcript{
		Conversation: &internal.Conversation{
			ID:        id,
			UserID:    "user-1",
			Title:     "Database Connection Failures",
			StartTime: "2026-08-01T10:00:00Z",
		},
		Messages: []*internal.Message{
			{
				ID:        "m1",
				Sender:    internal.SenderUser,
				Text:      "my app is down",
				Timestamp: 1000,
			},
			{
				ID:        "m2",
				Sender:    internal.SenderAssistant,
				Text:      "The database connection pool looks exhausted.",
				Analysis:  &internal.AnalysisResult{Response: "The database connection pool looks exhausted."},
				Timestamp: 2000,
			},
		},
	}
}
