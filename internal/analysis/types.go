package analysis

// SessionAnalysis is the full coaching report produced for one recorded
// speech. The JSON field names are the on-disk format for session
// history, so they stay stable even as the Go API evolves.
type SessionAnalysis struct {
	// Transcript is the verbatim transcript of what was said.
	Transcript string `json:"transcript"`

	// RefinedTranscript is the full speech rewritten as the target
	// persona would have delivered it.
	RefinedTranscript string `json:"refinedTranscript"`

	CoachingBreakdown CoachingBreakdown `json:"coachingBreakdown"`
	Metrics           Metrics           `json:"metrics"`
	Verbal            VerbalAnalysis    `json:"verbal"`
	Delivery          DeliveryAnalysis  `json:"delivery"`
	Mannerisms        MannerismAnalysis `json:"mannerisms"`
	Enhancements      Enhancements      `json:"enhancements"`
}

// CoachingBreakdown explains how and why the refined transcript differs
// from the original.
type CoachingBreakdown struct {
	StructuralShifts    string           `json:"structuralShifts"`
	VocabularyElevation []VocabularySwap `json:"vocabularyElevation"`
	EfficiencyWins      string           `json:"efficiencyWins"`
}

// VocabularySwap is one weak word replaced with a stronger one.
type VocabularySwap struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
	Context  string `json:"context"`
}

// Metrics are the numeric scores for the session.
type Metrics struct {
	// ClarityScore is 0-100; above 80 reads as a strong session.
	ClarityScore    int `json:"clarityScore"`
	FillerWordCount int `json:"fillerWordCount"`
	WordsPerMinute  int `json:"wordsPerMinute"`
	// EyeContactScore is 0-100.
	EyeContactScore int `json:"eyeContactScore"`
}

// VerbalAnalysis covers word-level habits.
type VerbalAnalysis struct {
	FillerWords         []string `json:"fillerWords"`
	VocabularyRichness  string   `json:"vocabularyRichness"`
	WordChoiceAlignment string   `json:"wordChoiceAlignment"`
}

// DeliveryAnalysis covers vocal mechanics.
type DeliveryAnalysis struct {
	Pacing            string `json:"pacing"`
	ToneAnalysis      string `json:"toneAnalysis"`
	VolumeConsistency string `json:"volumeConsistency"`
}

// MannerismAnalysis covers physical presence.
type MannerismAnalysis struct {
	EyeContactAnalysis string `json:"eyeContactAnalysis"`
	Gestures           string `json:"gestures"`
	Posture            string `json:"posture"`
}

// Enhancements is the forward-looking coaching plan.
type Enhancements struct {
	// TopAreas are the weaknesses to watch, ordered by priority. These
	// feed the watchlist for future sessions.
	TopAreas []FocusArea `json:"topAreas"`

	// Exercise is a drill to run before the next session.
	Exercise string `json:"exercise"`

	Rephrasing []Rephrasing `json:"rephrasing"`

	// RecurringAlert is set when a weakness from the watchlist was
	// repeated. Empty when nothing recurred.
	RecurringAlert string `json:"recurringAlert,omitempty"`
}

// FocusArea is one named weakness plus the corrective action.
type FocusArea struct {
	Area   string `json:"area"`
	Action string `json:"action"`
}

// Rephrasing is one sentence-level rewrite suggestion.
type Rephrasing struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
	Reason   string `json:"reason"`
}
