package profile

import (
	"strings"
	"testing"
)

func validProfile() UserProfile {
	return UserProfile{
		Name:             "Ada",
		PrimaryGoal:      "Command authority",
		PreferredPersona: "Stoic Professional",
		Level:            1,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UserProfile)
		wantErr bool
	}{
		{"valid preset", func(p *UserProfile) {}, false},
		{"empty name", func(p *UserProfile) { p.Name = "  " }, true},
		{"empty goal", func(p *UserProfile) { p.PrimaryGoal = "" }, true},
		{"empty persona", func(p *UserProfile) { p.PreferredPersona = "" }, true},
		{"custom without descriptor", func(p *UserProfile) {
			p.PreferredPersona = PersonaCustom
			p.CustomPersona = nil
		}, true},
		{"custom with empty name", func(p *UserProfile) {
			p.PreferredPersona = PersonaCustom
			p.CustomPersona = &CustomPersona{Name: " "}
		}, true},
		{"custom complete", func(p *UserProfile) {
			p.PreferredPersona = PersonaCustom
			p.CustomPersona = &CustomPersona{Name: "Thomas Shelby", Traits: "Low pitch, slow tempo"}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPersonaName(t *testing.T) {
	p := validProfile()
	if got := p.PersonaName(); got != "Stoic Professional" {
		t.Errorf("preset persona name = %q", got)
	}

	p.PreferredPersona = PersonaCustom
	p.CustomPersona = &CustomPersona{Name: "Thomas Shelby"}
	if got := p.PersonaName(); got != "Thomas Shelby" {
		t.Errorf("custom persona name = %q", got)
	}
}

func TestPersonaContext(t *testing.T) {
	p := validProfile()
	got := p.PersonaContext()
	if got != `TARGET PERSONA: "Stoic Professional"` {
		t.Errorf("preset persona context = %q", got)
	}

	p.PreferredPersona = PersonaCustom
	p.CustomPersona = &CustomPersona{
		Name:   "Thomas Shelby",
		Traits: "Low pitch, slow tempo",
		Adopt:  "By Order Of",
		Avoid:  "Maybe, Umm, Sorry",
	}
	got = p.PersonaContext()
	for _, want := range []string{
		"TARGET PERSONA: Thomas Shelby",
		"CRITICAL TRAITS TO MIMIC: Low pitch, slow tempo",
		"VOCABULARY TO ADOPT: By Order Of",
		"VOCABULARY TO AVOID: Maybe, Umm, Sorry",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("custom persona context missing %q:\n%s", want, got)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := validProfile()
	p.PreferredPersona = PersonaCustom
	p.CustomPersona = &CustomPersona{Name: "Thomas Shelby"}

	c := p.Clone()
	c.CustomPersona.Name = "changed"

	if p.CustomPersona.Name != "Thomas Shelby" {
		t.Error("Clone shares CustomPersona pointer with original")
	}
}
