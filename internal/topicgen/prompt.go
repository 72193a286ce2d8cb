package topicgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/podium/internal/profile"
	"github.com/abhisek/podium/internal/progression"
)

// buildPrompt constructs the topic request from the profile and the
// difficulty band for the given day.
func buildPrompt(p profile.UserProfile, dayNumber int) string {
	band := progression.TierFor(dayNumber)

	var b strings.Builder
	b.WriteString("Generate a single, engaging daily practice topic for a speech.\n")
	fmt.Fprintf(&b, "User Goal: %q.\n", p.PrimaryGoal)
	fmt.Fprintf(&b, "Target Persona: %q.\n", p.PersonaName())
	fmt.Fprintf(&b, "User Day: %d.\n\n", dayNumber)
	b.WriteString(band.Constraint)
	b.WriteString("\n\nReturn ONLY the topic sentence as plain text. No quotes.")
	return b.String()
}
