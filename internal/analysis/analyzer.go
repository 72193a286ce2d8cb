package analysis

import (
	"context"

	"github.com/abhisek/podium/internal/capture"
	"github.com/abhisek/podium/internal/profile"
)

// AnalyzeInput holds all context needed to grade one recording.
type AnalyzeInput struct {
	// Recording is the captured take to analyze.
	Recording *capture.Artifact

	// Profile supplies the goal and target persona.
	Profile profile.UserProfile

	// Topic is the prompt the user spoke on.
	Topic string

	// Watchlist is the comma-joined list of recent weakness labels,
	// duplicates and all. Empty means no prior history.
	Watchlist string
}

// Analyzer grades a recorded speech into a full coaching report.
type Analyzer interface {
	// Analyze returns a validated SessionAnalysis or an error.
	// No partial reports: any failure leaves the caller with nothing.
	Analyze(ctx context.Context, input AnalyzeInput) (*SessionAnalysis, error)
}
