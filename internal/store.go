package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConversationStore is the persistence boundary for conversations, their
// ordered message logs, and the workflow registry. All writes are individual
// statements; multi-write sequences are not wrapped in a transaction (the
// orchestrator accepts that trade-off).
type ConversationStore interface {
	CreateConversation(ctx context.Context, userID, title string) (*Conversation, error)
	AppendMessage(ctx context.Context, conversationID string, msg *Message) error
	UpdateConversationTitle(ctx context.Context, conversationID, title string) error
	GetConversation(ctx context.Context, conversationID string) (*Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]*Conversation, error)
	Messages(ctx context.Context, conversationID string) ([]*Message, error)
	StreamMessages(ctx context.Context, conversationID string) (<-chan *Message, error)
	ListWorkflows(ctx context.Context, userID string) ([]*Workflow, error)
	SaveWorkflow(ctx context.Context, wf *Workflow) error
}

// streamPollInterval is how often StreamMessages re-reads the log for new
// entries.
const streamPollInterval = 250 * time.Millisecond

// SQLiteStore implements ConversationStore on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store over an open database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateConversation inserts a new conversation record and returns it.
func (s *SQLiteStore) CreateConversation(ctx context.Context, userID, title string) (*Conversation, error) {
	conv := &Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		StartTime: time.Now().UTC().Format(time.RFC3339),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO conversations (id, user_id, title, start_time) VALUES (?, ?, ?, ?)",
		conv.ID, conv.UserID, conv.Title, conv.StartTime)
	if err != nil {
		return nil, &StoreError{Op: "create", Err: err}
	}

	return conv, nil
}

// AppendMessage appends a message to a conversation's log. Once written a
// message is never updated or deleted.
func (s *SQLiteStore) AppendMessage(ctx context.Context, conversationID string, msg *Message) error {
	var analysisJSON sql.NullString
	if msg.Analysis != nil {
		data, err := json.Marshal(msg.Analysis)
		if err != nil {
			return &StoreError{Op: "append", Err: fmt.Errorf("failed to marshal analysis: %w", err)}
		}
		analysisJSON = sql.NullString{String: string(data), Valid: true}
	}

	var imageURI sql.NullString
	if msg.ImageURI != "" {
		imageURI = sql.NullString{String: msg.ImageURI, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (id, conversation_id, sender, text, image_uri, analysis, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)",
		msg.ID, conversationID, msg.Sender, msg.Text, imageURI, analysisJSON, msg.Timestamp)
	if err != nil {
		return &StoreError{Op: "append", Err: err}
	}

	return nil
}

// UpdateConversationTitle rewrites a conversation's title. This is the only
// mutation a conversation record sees after creation.
func (s *SQLiteStore) UpdateConversationTitle(ctx context.Context, conversationID, title string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE conversations SET title = ? WHERE id = ?", title, conversationID)
	if err != nil {
		return &StoreError{Op: "update", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &StoreError{Op: "update", Err: fmt.Errorf("conversation %s not found", conversationID)}
	}
	return nil
}

// GetConversation loads a single conversation record.
func (s *SQLiteStore) GetConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, title, start_time FROM conversations WHERE id = ?", conversationID)

	var conv Conversation
	if err := row.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.StartTime); err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	return &conv, nil
}

// ListConversations returns a user's conversations, most recent first.
func (s *SQLiteStore) ListConversations(ctx context.Context, userID string) ([]*Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, title, start_time FROM conversations WHERE user_id = ? ORDER BY start_time DESC",
		userID)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	defer rows.Close()

	var conversations []*Conversation
	for rows.Next() {
		var conv Conversation
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.StartTime); err != nil {
			return nil, &StoreError{Op: "query", Err: err}
		}
		conversations = append(conversations, &conv)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return conversations, nil
}

// Messages returns a conversation's messages ordered ascending by timestamp.
func (s *SQLiteStore) Messages(ctx context.Context, conversationID string) ([]*Message, error) {
	return s.messagesAfter(ctx, conversationID, -1)
}

func (s *SQLiteStore) messagesAfter(ctx context.Context, conversationID string, after int64) ([]*Message, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, sender, text, image_uri, analysis, timestamp FROM messages WHERE conversation_id = ? AND timestamp > ? ORDER BY timestamp ASC",
		conversationID, after)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var msg Message
		var imageURI, analysisJSON sql.NullString
		if err := rows.Scan(&msg.ID, &msg.Sender, &msg.Text, &imageURI, &analysisJSON, &msg.Timestamp); err != nil {
			return nil, &StoreError{Op: "query", Err: err}
		}
		if imageURI.Valid {
			msg.ImageURI = imageURI.String
		}
		if analysisJSON.Valid {
			var analysis AnalysisResult
			if err := json.Unmarshal([]byte(analysisJSON.String), &analysis); err != nil {
				LogWarn("Failed to parse analysis for message %s: %v", msg.ID, err)
			} else {
				msg.Analysis = &analysis
			}
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return messages, nil
}

// StreamMessages returns a live-updating ascending feed of a conversation's
// messages. Existing messages are delivered first, then the log is polled for
// new entries until the context is cancelled. The channel is closed on
// cancellation or on a read error.
func (s *SQLiteStore) StreamMessages(ctx context.Context, conversationID string) (<-chan *Message, error) {
	initial, err := s.Messages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	out := make(chan *Message, len(initial)+16)

	go func() {
		defer close(out)

		lastSeen := int64(-1)
		for _, msg := range initial {
			select {
			case out <- msg:
				lastSeen = msg.Timestamp
			case <-ctx.Done():
				return
			}
		}

		ticker := time.NewTicker(streamPollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			newer, err := s.messagesAfter(ctx, conversationID, lastSeen)
			if err != nil {
				LogDebug("Message stream for %s stopped: %v", conversationID, err)
				return
			}
			for _, msg := range newer {
				select {
				case out <- msg:
					lastSeen = msg.Timestamp
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// ListWorkflows returns a user's registered remediation workflows.
func (s *SQLiteStore) ListWorkflows(ctx context.Context, userID string) ([]*Workflow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, description, steps FROM workflows WHERE user_id = ? ORDER BY name ASC",
		userID)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	defer rows.Close()

	var workflows []*Workflow
	for rows.Next() {
		var wf Workflow
		if err := rows.Scan(&wf.ID, &wf.UserID, &wf.Name, &wf.Description, &wf.Steps); err != nil {
			return nil, &StoreError{Op: "query", Err: err}
		}
		workflows = append(workflows, &wf)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return workflows, nil
}

// SaveWorkflow inserts or replaces a workflow record.
func (s *SQLiteStore) SaveWorkflow(ctx context.Context, wf *Workflow) error {
	if wf.ID == "" {
		wf.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO workflows (id, user_id, name, description, steps) VALUES (?, ?, ?, ?, ?)",
		wf.ID, wf.UserID, wf.Name, wf.Description, wf.Steps)
	if err != nil {
		return &StoreError{Op: "append", Err: err}
	}
	return nil
}
