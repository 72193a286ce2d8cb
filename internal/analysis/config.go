package analysis

// Config controls the behavior of the LLMAnalyzer.
type Config struct {
	// MaxTokens is the token budget for the LLM response. Reports carry
	// two full transcripts, so this runs much higher than topic
	// generation.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Kept low so
	// metrics stay consistent between sessions.
	Temperature float64
}

// DefaultConfig returns the recommended analyzer settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.3,
	}
}
