package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient wraps one process-wide genai client. It is created once at
// startup, injected into whatever needs a service adapter, and closed on
// shutdown. It implements all four service contracts.
type GeminiClient struct {
	client *genai.Client
	model  string
}

var _ AnalysisService = (*GeminiClient)(nil)
var _ TitleService = (*GeminiClient)(nil)
var _ TranscriptionService = (*GeminiClient)(nil)
var _ RemediationService = (*GeminiClient)(nil)

// NewGeminiClient creates the Gemini backend client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GOOGLE_API_KEY or api_key in the config file)")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Close is part of the client lifecycle contract. The genai client holds no
// closable resources, so there is nothing to release.
func (g *GeminiClient) Close() error {
	return nil
}

// generate runs one GenerateContent call and returns the concatenated text.
func (g *GeminiClient) generate(ctx context.Context, service string, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", &ServiceError{Service: service, Err: err}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &ServiceError{Service: service, Err: fmt.Errorf("model returned no text")}
	}
	return text, nil
}

// Analyze diagnoses an issue from logs, metrics, the user question, and an
// optional screenshot carried as a data URI.
func (g *GeminiClient) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	prompt := fmt.Sprintf(analysisPromptTemplate, req.Logs, req.Metrics, req.UserQuestion)
	parts := []*genai.Part{genai.NewPartFromText(prompt)}

	if req.ImageDataURI != "" {
		mimeType, data, err := ParseDataURI(req.ImageDataURI)
		if err != nil {
			return nil, &ServiceError{Service: "analysis", Err: fmt.Errorf("invalid image payload: %w", err)}
		}
		parts = append(parts, genai.NewPartFromBytes(data, mimeType))
	}

	text, err := g.generate(ctx, "analysis", parts)
	if err != nil {
		return nil, err
	}
	return &AnalysisResult{Response: text}, nil
}

// GenerateTitle produces a short conversation title from the user's first
// message, clamped to five words.
func (g *GeminiClient) GenerateTitle(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(titlePromptTemplate, message)
	text, err := g.generate(ctx, "title", []*genai.Part{genai.NewPartFromText(prompt)})
	if err != nil {
		return "", err
	}
	return ClampTitle(text), nil
}

// Transcribe converts an encoded audio payload into text.
func (g *GeminiClient) Transcribe(ctx context.Context, audioDataURI string) (string, error) {
	mimeType, data, err := ParseDataURI(audioDataURI)
	if err != nil {
		return "", &ServiceError{Service: "transcription", Err: fmt.Errorf("invalid audio payload: %w", err)}
	}

	parts := []*genai.Part{
		genai.NewPartFromText(transcriptionPrompt),
		genai.NewPartFromBytes(data, mimeType),
	}
	return g.generate(ctx, "transcription", parts)
}

// RecommendWorkflow recommends a pre-approved remediation workflow for an
// analyzed issue.
func (g *GeminiClient) RecommendWorkflow(ctx context.Context, req RemediationRequest) (*RemediationResult, error) {
	prompt := fmt.Sprintf(remediationPromptTemplate,
		req.Issue, req.Severity, req.Confidence, req.Logs, req.Metrics, req.Workflows, req.RequiresConfirmation)

	text, err := g.generate(ctx, "remediation", []*genai.Part{genai.NewPartFromText(prompt)})
	if err != nil {
		return nil, err
	}

	var result RemediationResult
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &result); err != nil {
		return nil, &ServiceError{Service: "remediation", Err: fmt.Errorf("failed to parse model output: %w", err)}
	}
	return &result, nil
}

// SummarizeForApproval summarizes an issue and proposed remediation for SRE
// approval.
func (g *GeminiClient) SummarizeForApproval(ctx context.Context, req ApprovalRequest) (string, error) {
	prompt := fmt.Sprintf(approvalPromptTemplate,
		req.Issue, req.Severity, req.Confidence, req.RecommendedAction, req.Reasoning)
	return g.generate(ctx, "approval", []*genai.Part{genai.NewPartFromText(prompt)})
}

// ClampTitle trims quotes and whitespace from a generated title and clamps it
// to five words.
func ClampTitle(title string) string {
	title = strings.Trim(strings.TrimSpace(title), `"'`)
	words := strings.Fields(title)
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}

// stripCodeFence removes a surrounding markdown code fence from model output.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
