// Package progression maps the user's level to a topic difficulty tier.
package progression

// Tier is one of four difficulty bands for generated topics.
type Tier int

const (
	TierDescriptive Tier = iota + 1 // levels 1-7
	TierOpinion                     // levels 8-14
	TierNarrative                   // levels 15-21
	TierPersuasion                  // levels 22+
)

// Band holds the tier descriptor and the constraint text injected into the
// topic-generation prompt.
type Band struct {
	Tier       Tier
	Descriptor string
	Constraint string
}

var bands = [...]Band{
	{
		Tier:       TierDescriptive,
		Descriptor: "Simple & Descriptive",
		Constraint: "LEVEL: SIMPLE & DESCRIPTIVE. Task: Describe a tangible object or simple process. No abstract thought required.",
	},
	{
		Tier:       TierOpinion,
		Descriptor: "Opinion & Justification",
		Constraint: "LEVEL: OPINION & JUSTIFICATION. Task: State a clear preference or opinion and provide two distinct reasons.",
	},
	{
		Tier:       TierNarrative,
		Descriptor: "Narrative Structure",
		Constraint: "LEVEL: NARRATIVE STRUCTURE. Task: Tell a short story with a clear beginning, middle, and end/result.",
	},
	{
		Tier:       TierPersuasion,
		Descriptor: "Persuasion & Abstraction",
		Constraint: "LEVEL: PERSUASION & ABSTRACTION. Task: Complex reasoning, persuasion, or handling a crisis. Must align directly with the User Goal.",
	},
}

// TierFor returns the difficulty band for a level. It is total over all
// integers: levels below 1 (possible with malformed persisted state) clamp
// to the first band rather than erroring.
func TierFor(level int) Band {
	switch {
	case level <= 7:
		return bands[0]
	case level <= 14:
		return bands[1]
	case level <= 21:
		return bands[2]
	default:
		return bands[3]
	}
}
