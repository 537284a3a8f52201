package internal

import "context"

// AnalysisRequest is the input to the root-cause analysis service. Logs and
// metrics are freeform diagnostic context; in the conversational mode they
// default to empty strings.
type AnalysisRequest struct {
	Logs         string
	Metrics      string
	UserQuestion string
	ImageDataURI string // optional, data URI with MIME prefix
}

// RemediationRequest is the input to the remediation recommendation service.
// Workflows is the user's pre-approved workflow registry, one per line; the
// recommendation picks from it.
type RemediationRequest struct {
	Issue                string
	Severity             string // LOW, MEDIUM, HIGH
	Confidence           float64
	Logs                 string
	Metrics              string
	Workflows            string
	RequiresConfirmation bool
}

// RemediationResult names a pre-approved workflow and explains the choice.
type RemediationResult struct {
	RecommendedAction string `json:"recommended_action"`
	Reasoning         string `json:"reasoning"`
}

// ApprovalRequest is the input to the approval summary service.
type ApprovalRequest struct {
	Issue             string
	Severity          string
	Confidence        float64
	RecommendedAction string
	Reasoning         string
}

// AnalysisService diagnoses an infrastructure issue from logs, metrics, a
// user question, and an optional screenshot. At-most-once: a failure is final
// for that invocation, the caller decides whether to surface it.
type AnalysisService interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
}

// TitleService generates a short conversation title (five words or less) from
// the user's first message.
type TitleService interface {
	GenerateTitle(ctx context.Context, message string) (string, error)
}

// TranscriptionService converts an encoded audio payload (data URI with MIME
// prefix) into text.
type TranscriptionService interface {
	Transcribe(ctx context.Context, audioDataURI string) (string, error)
}

// RemediationService recommends a pre-approved remediation workflow and can
// summarize an issue plus proposed action for operator approval.
type RemediationService interface {
	RecommendWorkflow(ctx context.Context, req RemediationRequest) (*RemediationResult, error)
	SummarizeForApproval(ctx context.Context, req ApprovalRequest) (string, error)
}
