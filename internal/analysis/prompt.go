package analysis

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert, high-level Communication Coach. Your tone is strict, analytical, and uncompromising (The Shelby/Tate Aesthetic).

Analyze the attached video/audio of the user delivering a practice speech.

**CORE TASKS**:
1. **METRICS**: Analyze Clarity, Fillers, Pace, Eye Contact.
2. **REFINED TRANSCRIPT (The Master's Revision)**: Rewrite the *entire* speech as if the Target Persona spoke it. It must be polished, authoritative, and perfectly structured.
3. **COACHING BREAKDOWN**: Explain the rewrite.
   - Structural Shifts: Why sentence structures changed (e.g., passive to active).
   - Vocabulary Elevation: List specific weak words swapped for power words.
   - Efficiency Wins: Redundancies removed.
4. **RECIDIVISM CHECK**: If the user repeated a weakness from the HISTORY WATCHLIST, flag it specifically in the 'recurringAlert' field. Return null if none.

Return valid JSON matching the response schema. Every explanation field must be specific to this speech, never generic advice.`

// buildUserMessage constructs the per-session context that accompanies
// the recording.
func buildUserMessage(input AnalyzeInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %q\n", input.Topic)
	fmt.Fprintf(&b, "Primary Objective: %q\n", input.Profile.PrimaryGoal)
	b.WriteString(input.Profile.PersonaContext())
	b.WriteString("\n")
	b.WriteString(historyContext(input.Watchlist))

	return b.String()
}

// historyContext renders the watchlist line. An empty watchlist means
// this is effectively a first session.
func historyContext(watchlist string) string {
	if watchlist == "" {
		return "HISTORY: No prior data."
	}
	return fmt.Sprintf("HISTORY WATCHLIST (User's Recent Weaknesses): %s. Check strictly if these are repeated.", watchlist)
}
