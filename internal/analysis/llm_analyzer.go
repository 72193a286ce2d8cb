package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/podium/internal/capture"
	"github.com/abhisek/podium/internal/llm"
)

// LLMAnalyzer implements Analyzer using a multimodal LLM provider.
type LLMAnalyzer struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMAnalyzer with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMAnalyzer {
	return &LLMAnalyzer{provider: provider, config: cfg}
}

// Analyze sends the recording plus session context to the provider and
// parses the structured coaching report.
func (a *LLMAnalyzer) Analyze(ctx context.Context, input AnalyzeInput) (*SessionAnalysis, error) {
	ctx = llm.WithPurpose(ctx, "session-analysis")

	if err := capture.Validate(input.Recording); err != nil {
		return nil, err
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Attachments: []llm.Attachment{
			{MIMEType: input.Recording.MIMEType, Data: input.Recording.Data},
		},
		Schema:      SessionAnalysisSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	var report SessionAnalysis
	if err := json.Unmarshal(resp.Content, &report); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	if len(report.Enhancements.TopAreas) == 0 {
		return nil, fmt.Errorf("analysis response missing focus areas")
	}

	return &report, nil
}
