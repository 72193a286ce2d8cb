package profile

import (
	"fmt"
	"strings"
)

// CustomPersona describes a user-authored target archetype.
type CustomPersona struct {
	Name   string `json:"name"`
	Traits string `json:"traits"` // e.g. "Speak with absolute certainty, controlled pace"
	Adopt  string `json:"adopt"`  // vocabulary/habits to adopt
	Avoid  string `json:"avoid"`  // vocabulary/habits to avoid
}

// PersonaCustom is the sentinel value of PreferredPersona marking that
// CustomPersona holds the effective archetype.
const PersonaCustom = "Custom"

// UserProfile is the single per-installation user record.
// Level and Streak both advance by exactly one per completed session;
// Streak deliberately has no day-gap reset, so it counts total completed
// sessions rather than consecutive days.
type UserProfile struct {
	Name             string         `json:"name"`
	PrimaryGoal      string         `json:"primaryGoal"`
	IsCustomGoal     bool           `json:"isCustomGoal"`
	PreferredPersona string         `json:"preferredPersona"`
	CustomPersona    *CustomPersona `json:"customPersona,omitempty"`
	Level            int            `json:"level"`
	Streak           int            `json:"streak"`
}

// PresetGoals are the onboarding goal choices.
var PresetGoals = []string{
	"Sound more confident in meetings",
	"Speak clearly under pressure",
	"Command authority",
	"Master storytelling",
}

// PresetPersonas are the onboarding archetype choices.
var PresetPersonas = []string{
	"Authoritative Leader",
	"Stoic Professional",
	"Witty Conversationalist",
	"Calm Expert",
}

// Validate checks structural invariants before the profile is accepted.
func (p *UserProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name must not be empty")
	}
	if strings.TrimSpace(p.PrimaryGoal) == "" {
		return fmt.Errorf("primary goal must not be empty")
	}
	if p.PreferredPersona == "" {
		return fmt.Errorf("preferred persona must not be empty")
	}
	if p.PreferredPersona == PersonaCustom {
		if p.CustomPersona == nil || strings.TrimSpace(p.CustomPersona.Name) == "" {
			return fmt.Errorf("custom persona requires a non-empty name")
		}
	}
	return nil
}

// PersonaName returns the effective archetype name: the custom persona's
// name when one is selected, the preset name otherwise.
func (p *UserProfile) PersonaName() string {
	if p.PreferredPersona == PersonaCustom && p.CustomPersona != nil {
		return p.CustomPersona.Name
	}
	return p.PreferredPersona
}

// PersonaContext renders the persona block embedded in analysis prompts.
// Custom personas expand to the full trait/vocabulary descriptor.
func (p *UserProfile) PersonaContext() string {
	if p.PreferredPersona == PersonaCustom && p.CustomPersona != nil {
		cp := p.CustomPersona
		var b strings.Builder
		fmt.Fprintf(&b, "TARGET PERSONA: %s\n", cp.Name)
		fmt.Fprintf(&b, "CRITICAL TRAITS TO MIMIC: %s\n", cp.Traits)
		fmt.Fprintf(&b, "VOCABULARY TO ADOPT: %s\n", cp.Adopt)
		fmt.Fprintf(&b, "VOCABULARY TO AVOID: %s", cp.Avoid)
		return b.String()
	}
	return fmt.Sprintf("TARGET PERSONA: %q", p.PreferredPersona)
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the canonical value to mutation.
func (p *UserProfile) Clone() UserProfile {
	out := *p
	if p.CustomPersona != nil {
		cp := *p.CustomPersona
		out.CustomPersona = &cp
	}
	return out
}
