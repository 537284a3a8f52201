package internal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PlaceholderTitle is the title a conversation carries until title generation
// rewrites it.
const PlaceholderTitle = "New Conversation"

// FallbackResponse is the fixed assistant message written when the analysis
// call fails, so the transcript never ends on an unanswered user turn.
const FallbackResponse = "Sorry, I encountered an error while analyzing your request. Please try again."

// OrchestratorConfig wires an Orchestrator's collaborators.
type OrchestratorConfig struct {
	Store    ConversationStore
	Analysis AnalysisService
	Titles   TitleService
	UserID   string

	// Diagnostic context forwarded to every analysis call. In the
	// conversational mode there is no live source, so both default to empty.
	Logs    string
	Metrics string

	AnalysisTimeout time.Duration
	TitleTimeout    time.Duration
}

// Orchestrator drives a user turn through submission, concurrent enrichment,
// and durable recording. One turn is processed at a time; the title call is a
// best-effort side channel that never blocks turn completion.
type Orchestrator struct {
	store    ConversationStore
	analysis AnalysisService
	titles   TitleService
	userID   string
	logs     string
	metrics  string

	analysisTimeout time.Duration
	titleTimeout    time.Duration

	submitMu sync.Mutex
	titleWG  sync.WaitGroup

	// lastTimestamp is the highest timestamp issued so far, guarded by
	// submitMu. Message timestamps are strictly increasing across turns even
	// when consecutive turns land in the same millisecond.
	lastTimestamp int64

	now func() time.Time
}

// TurnResult reports the outcome of one submitted turn.
type TurnResult struct {
	ConversationID   string
	Created          bool // a new conversation was created for this turn
	UserMessage      *Message
	AssistantMessage *Message
	AnalysisFailed   bool // the assistant message is the fallback
}

// NewOrchestrator creates a turn orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	analysisTimeout := cfg.AnalysisTimeout
	if analysisTimeout <= 0 {
		analysisTimeout = DefaultAnalysisTimeout
	}
	titleTimeout := cfg.TitleTimeout
	if titleTimeout <= 0 {
		titleTimeout = DefaultTitleTimeout
	}

	return &Orchestrator{
		store:           cfg.Store,
		analysis:        cfg.Analysis,
		titles:          cfg.Titles,
		userID:          cfg.UserID,
		logs:            cfg.Logs,
		metrics:         cfg.Metrics,
		analysisTimeout: analysisTimeout,
		titleTimeout:    titleTimeout,
		now:             time.Now,
	}
}

// SubmitTurn submits one finalized turn. If conversationID is empty a new
// conversation is created first and all subsequent writes use its id.
//
// The user message is durably recorded before any enrichment runs; the title
// call (first turn with text only) is dispatched fire-and-forget; the
// analysis call is awaited, and its failure is converted into a durable
// fallback assistant message rather than an error. Only store-level failures
// are returned to the caller.
func (o *Orchestrator) SubmitTurn(ctx context.Context, turn *PendingTurn, conversationID string) (*TurnResult, error) {
	if !o.submitMu.TryLock() {
		return nil, ErrTurnInFlight
	}
	defer o.submitMu.Unlock()

	if turn == nil || (turn.Text == "" && turn.ImageDataURI == "") {
		return nil, ErrEmptyTurn
	}

	// Step 1: conversation resolution. A creation failure fails the whole
	// submission; no message is written.
	created := false
	if conversationID == "" {
		conv, err := o.store.CreateConversation(ctx, o.userID, PlaceholderTitle)
		if err != nil {
			return nil, err
		}
		conversationID = conv.ID
		created = true
	}

	// Step 2: user message durability, before any analysis is invoked.
	userMsg := &Message{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Text:      turn.Text,
		ImageURI:  turn.ImageDataURI,
		Timestamp: o.nextTimestamp(),
	}
	if err := o.store.AppendMessage(ctx, conversationID, userMsg); err != nil {
		return nil, err
	}

	// Step 3: enrichment fan-out. The title call only runs for the first
	// turn of a new conversation and only when there is text to title.
	if created && turn.Text != "" {
		o.titleWG.Add(1)
		go o.generateTitle(conversationID, turn.Text)
	}

	analysisCtx, cancel := context.WithTimeout(ctx, o.analysisTimeout)
	defer cancel()

	result, analysisErr := o.analysis.Analyze(analysisCtx, AnalysisRequest{
		Logs:         o.logs,
		Metrics:      o.metrics,
		UserQuestion: turn.Text,
		ImageDataURI: turn.ImageDataURI,
	})

	// Step 4: result reconciliation. Either branch appends exactly one
	// assistant message; its timestamp is strictly greater than the user
	// message's.
	assistantMsg := &Message{
		ID:        uuid.NewString(),
		Sender:    SenderAssistant,
		Timestamp: o.nextTimestamp(),
	}
	if analysisErr != nil {
		LogError("Analysis failed for conversation %s: %v", conversationID, analysisErr)
		assistantMsg.Text = FallbackResponse
	} else {
		assistantMsg.Text = result.Response
		assistantMsg.Analysis = result
	}

	if err := o.store.AppendMessage(ctx, conversationID, assistantMsg); err != nil {
		return nil, err
	}

	// Step 5: a failed analysis is a resolved outcome, not an error.
	return &TurnResult{
		ConversationID:   conversationID,
		Created:          created,
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		AnalysisFailed:   analysisErr != nil,
	}, nil
}

// generateTitle is the fire-and-forget title side channel. Failure or
// non-arrival is swallowed; the placeholder title persists. It runs detached
// from the submitting call's context so an early return cannot cancel it.
func (o *Orchestrator) generateTitle(conversationID, message string) {
	defer o.titleWG.Done()

	ctx, cancel := context.WithTimeout(context.Background(), o.titleTimeout)
	defer cancel()

	title, err := o.titles.GenerateTitle(ctx, message)
	if err != nil {
		LogWarn("Title generation failed for conversation %s: %v", conversationID, err)
		return
	}
	if title == "" {
		return
	}

	if err := o.store.UpdateConversationTitle(ctx, conversationID, title); err != nil {
		LogWarn("Failed to update title for conversation %s: %v", conversationID, err)
	}
}

// nextTimestamp returns the current time in Unix milliseconds, bumped when
// needed so it is strictly greater than every timestamp issued before it.
// Caller holds submitMu.
func (o *Orchestrator) nextTimestamp() int64 {
	ts := o.now().UnixMilli()
	if ts <= o.lastTimestamp {
		ts = o.lastTimestamp + 1
	}
	o.lastTimestamp = ts
	return ts
}

// Close waits for any in-flight title generation to settle.
func (o *Orchestrator) Close() {
	o.titleWG.Wait()
}
