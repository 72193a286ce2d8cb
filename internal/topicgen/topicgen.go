// Package topicgen produces the daily practice topic. Topic generation
// is the one LLM call that never fails outward: any error collapses to
// a safe fallback topic so the practice loop can always start.
package topicgen

import (
	"context"
	"strings"

	"github.com/abhisek/podium/internal/llm"
	"github.com/abhisek/podium/internal/profile"
)

// FallbackTopic is used whenever generation fails. Deliberately tier-1
// simple so it never overshoots a new user's level.
const FallbackTopic = "Describe the room you are currently in."

// Generator produces practice topics.
type Generator interface {
	// DailyTopic returns a topic for the given day number. It never
	// returns an error; failures yield FallbackTopic.
	DailyTopic(ctx context.Context, p profile.UserProfile, dayNumber int) string
}

// Config controls the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget; topics are one sentence.
	MaxTokens int

	// Temperature runs high so daily topics stay varied.
	Temperature float64
}

// DefaultConfig returns the recommended topic generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.9,
	}
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// DailyTopic generates a topic matched to the user's goal, persona, and
// difficulty band for the day.
func (g *LLMGenerator) DailyTopic(ctx context.Context, p profile.UserProfile, dayNumber int) string {
	ctx = llm.WithPurpose(ctx, "topic-gen")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(p, dayNumber)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return FallbackTopic
	}

	topic := cleanTopic(string(resp.Content))
	if topic == "" {
		return FallbackTopic
	}
	return topic
}

// cleanTopic strips whitespace and any quoting the model added despite
// instructions.
func cleanTopic(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
