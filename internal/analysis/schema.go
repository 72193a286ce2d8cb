package analysis

import "github.com/abhisek/podium/internal/llm"

// SessionAnalysisSchema defines the JSON schema for coaching report responses.
var SessionAnalysisSchema = &llm.Schema{
	Name:        "session-analysis",
	Description: "A full coaching report for one recorded practice speech",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"transcript": map[string]any{
				"type":        "string",
				"description": "Verbatim transcript of the speech, including filler words",
			},
			"refinedTranscript": map[string]any{
				"type":        "string",
				"description": "The entire speech rewritten as the target persona would deliver it",
			},
			"coachingBreakdown": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"structuralShifts": map[string]any{
						"type":        "string",
						"description": "Why sentence structures changed, e.g. passive to active",
					},
					"vocabularyElevation": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"original": map[string]any{"type": "string"},
								"improved": map[string]any{"type": "string"},
								"context":  map[string]any{"type": "string"},
							},
							"required":             []any{"original", "improved", "context"},
							"additionalProperties": false,
						},
						"description": "Weak words swapped for power words",
					},
					"efficiencyWins": map[string]any{
						"type":        "string",
						"description": "Redundancies removed from the original",
					},
				},
				"required":             []any{"structuralShifts", "vocabularyElevation", "efficiencyWins"},
				"additionalProperties": false,
			},
			"metrics": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"clarityScore":    map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"fillerWordCount": map[string]any{"type": "integer", "minimum": 0},
					"wordsPerMinute":  map[string]any{"type": "integer", "minimum": 0},
					"eyeContactScore": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				},
				"required":             []any{"clarityScore", "fillerWordCount", "wordsPerMinute", "eyeContactScore"},
				"additionalProperties": false,
			},
			"verbal": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"fillerWords": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"vocabularyRichness":  map[string]any{"type": "string"},
					"wordChoiceAlignment": map[string]any{"type": "string"},
				},
				"required":             []any{"fillerWords", "vocabularyRichness", "wordChoiceAlignment"},
				"additionalProperties": false,
			},
			"delivery": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"pacing":            map[string]any{"type": "string"},
					"toneAnalysis":      map[string]any{"type": "string"},
					"volumeConsistency": map[string]any{"type": "string"},
				},
				"required":             []any{"pacing", "toneAnalysis", "volumeConsistency"},
				"additionalProperties": false,
			},
			"mannerisms": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"eyeContactAnalysis": map[string]any{"type": "string"},
					"gestures":           map[string]any{"type": "string"},
					"posture":            map[string]any{"type": "string"},
				},
				"required":             []any{"eyeContactAnalysis", "gestures", "posture"},
				"additionalProperties": false,
			},
			"enhancements": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topAreas": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"area":   map[string]any{"type": "string"},
								"action": map[string]any{"type": "string"},
							},
							"required":             []any{"area", "action"},
							"additionalProperties": false,
						},
						"minItems":    1,
						"description": "Top weaknesses to watch, ordered by priority",
					},
					"exercise": map[string]any{
						"type":        "string",
						"description": "A drill to run before the next session",
					},
					"rephrasing": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"original": map[string]any{"type": "string"},
								"improved": map[string]any{"type": "string"},
								"reason":   map[string]any{"type": "string"},
							},
							"required":             []any{"original", "improved", "reason"},
							"additionalProperties": false,
						},
					},
					"recurringAlert": map[string]any{
						"type":        []any{"string", "null"},
						"description": "Warning when a watchlist weakness was repeated; null if none",
					},
				},
				"required":             []any{"topAreas", "exercise", "rephrasing"},
				"additionalProperties": false,
			},
		},
		"required": []any{
			"transcript", "refinedTranscript", "coachingBreakdown",
			"metrics", "verbal", "delivery", "mannerisms", "enhancements",
		},
		"additionalProperties": false,
	},
}
