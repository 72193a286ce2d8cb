// Package onboarding is the first-run wizard: name and goal, then the
// target persona, then confirmation. Completing it writes the initial
// profile and lands on the dashboard.
package onboarding

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/profile"
	"github.com/abhisek/podium/internal/router"
	"github.com/abhisek/podium/internal/screen"
	"github.com/abhisek/podium/internal/ui/components"
	"github.com/abhisek/podium/internal/ui/layout"
	"github.com/abhisek/podium/internal/ui/theme"
)

type step int

const (
	stepIdentity step = iota
	stepPersona
	stepCustomPersona
	stepConfirm
)

// customGoalLabel marks the goal menu entry that opens free text entry.
const customGoalLabel = "Something else..."

// OnboardingScreen collects the initial profile.
type OnboardingScreen struct {
	orchestrator *coach.Coach
	dashboard    func() screen.Screen

	step step

	nameInput  components.TextInput
	goalMenu   components.Menu
	goalInput  components.TextInput
	nameDone   bool
	goalPick   int // index into PresetGoals, or -1 for custom
	typingGoal bool

	personaMenu components.Menu
	personaPick int // index into PresetPersonas, or -1 for custom

	customInputs  []components.TextInput // name, traits, adopt, avoid
	customFocused int

	draft   profile.UserProfile
	saving  bool
	saveErr string
}

var _ screen.Screen = (*OnboardingScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardingScreen)(nil)

// savedMsg reports the async profile save.
type savedMsg struct {
	Err error
}

// New creates the onboarding wizard. dashboard builds the screen shown
// after the profile is saved.
func New(orchestrator *coach.Coach, dashboard func() screen.Screen) *OnboardingScreen {
	s := &OnboardingScreen{
		orchestrator: orchestrator,
		dashboard:    dashboard,
		nameInput:    components.NewTextInput("What should I call you?", "Your name", 40),
		goalInput:    components.NewTextInput("Describe your goal", "e.g. Nail my conference talk", 80),
		goalPick:     -1,
		personaPick:  -1,
	}

	goalItems := make([]components.MenuItem, 0, len(profile.PresetGoals)+1)
	for _, g := range profile.PresetGoals {
		goalItems = append(goalItems, components.MenuItem{Label: g})
	}
	goalItems = append(goalItems, components.MenuItem{Label: customGoalLabel})
	s.goalMenu = components.NewMenu(goalItems)

	personaItems := make([]components.MenuItem, 0, len(profile.PresetPersonas)+1)
	for _, p := range profile.PresetPersonas {
		personaItems = append(personaItems, components.MenuItem{Label: p})
	}
	personaItems = append(personaItems, components.MenuItem{Label: "Build my own persona..."})
	s.personaMenu = components.NewMenu(personaItems)

	s.customInputs = []components.TextInput{
		components.NewTextInput("Persona name", "e.g. The Closer", 40),
		components.NewTextInput("Critical traits to mimic", "e.g. short declarative sentences", 120),
		components.NewTextInput("Vocabulary to adopt", "e.g. leverage, decisive", 120),
		components.NewTextInput("Vocabulary to avoid", "e.g. maybe, kind of", 120),
	}

	return s
}

func (s *OnboardingScreen) Init() tea.Cmd {
	return s.nameInput.Init()
}

func (s *OnboardingScreen) Title() string {
	return "Initiation"
}

func (s *OnboardingScreen) KeyHints() []layout.KeyHint {
	switch s.step {
	case stepConfirm:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Start over"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

func (s *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
			return s, nil
		}
		next := s.dashboard()
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInputs(msg)
}

func (s *OnboardingScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.saving {
		return s, nil
	}

	switch s.step {
	case stepIdentity:
		return s.handleIdentityKey(msg)
	case stepPersona:
		return s.handlePersonaKey(msg)
	case stepCustomPersona:
		return s.handleCustomPersonaKey(msg)
	case stepConfirm:
		return s.handleConfirmKey(msg)
	}
	return s, nil
}

func (s *OnboardingScreen) handleIdentityKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if !s.nameDone {
		if msg.String() == "enter" {
			if s.nameInput.Value() == "" {
				s.nameInput.Submit(false)
				return s, nil
			}
			s.nameDone = true
			s.nameInput.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.nameInput, cmd = s.nameInput.Update(msg)
		return s, cmd
	}

	if s.typingGoal {
		if msg.String() == "enter" {
			if s.goalInput.Value() == "" {
				s.goalInput.Submit(false)
				return s, nil
			}
			s.goalPick = -1
			s.step = stepPersona
			return s, nil
		}
		var cmd tea.Cmd
		s.goalInput, cmd = s.goalInput.Update(msg)
		return s, cmd
	}

	if msg.String() == "enter" {
		if s.goalMenu.Selected == len(profile.PresetGoals) {
			s.typingGoal = true
			return s, s.goalInput.Focus()
		}
		s.goalPick = s.goalMenu.Selected
		s.step = stepPersona
		return s, nil
	}
	var cmd tea.Cmd
	s.goalMenu, cmd = s.goalMenu.Update(msg)
	return s, cmd
}

func (s *OnboardingScreen) handlePersonaKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		if s.personaMenu.Selected == len(profile.PresetPersonas) {
			s.personaPick = -1
			s.step = stepCustomPersona
			s.customFocused = 0
			return s, s.customInputs[0].Focus()
		}
		s.personaPick = s.personaMenu.Selected
		s.buildDraft()
		s.step = stepConfirm
		return s, nil
	}
	var cmd tea.Cmd
	s.personaMenu, cmd = s.personaMenu.Update(msg)
	return s, cmd
}

func (s *OnboardingScreen) handleCustomPersonaKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab", "down":
		if s.customFocused == 0 && s.customInputs[0].Value() == "" {
			s.customInputs[0].Submit(false)
			return s, nil
		}
		if msg.String() == "enter" && s.customFocused == len(s.customInputs)-1 {
			s.buildDraft()
			s.step = stepConfirm
			return s, nil
		}
		s.customInputs[s.customFocused].Blur()
		s.customFocused++
		if s.customFocused >= len(s.customInputs) {
			s.customFocused = len(s.customInputs) - 1
		}
		return s, s.customInputs[s.customFocused].Focus()
	case "shift+tab", "up":
		if s.customFocused > 0 {
			s.customInputs[s.customFocused].Blur()
			s.customFocused--
			return s, s.customInputs[s.customFocused].Focus()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.customInputs[s.customFocused], cmd = s.customInputs[s.customFocused].Update(msg)
	return s, cmd
}

func (s *OnboardingScreen) handleConfirmKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.saving = true
		s.saveErr = ""
		draft := s.draft
		orchestrator := s.orchestrator
		return s, func() tea.Msg {
			return savedMsg{Err: orchestrator.CompleteOnboarding(context.Background(), draft)}
		}
	case "esc":
		// Restart from the top rather than popping to an empty stack.
		fresh := New(s.orchestrator, s.dashboard)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: fresh}
		}
	}
	return s, nil
}

func (s *OnboardingScreen) forwardToInputs(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case s.step == stepIdentity && !s.nameDone:
		s.nameInput, cmd = s.nameInput.Update(msg)
	case s.step == stepIdentity && s.typingGoal:
		s.goalInput, cmd = s.goalInput.Update(msg)
	case s.step == stepCustomPersona:
		s.customInputs[s.customFocused], cmd = s.customInputs[s.customFocused].Update(msg)
	}
	return s, cmd
}

// buildDraft assembles the profile from the collected answers.
func (s *OnboardingScreen) buildDraft() {
	p := profile.UserProfile{
		Name:   s.nameInput.Value(),
		Level:  1,
		Streak: 0,
	}

	if s.goalPick >= 0 {
		p.PrimaryGoal = profile.PresetGoals[s.goalPick]
	} else {
		p.PrimaryGoal = s.goalInput.Value()
		p.IsCustomGoal = true
	}

	if s.personaPick >= 0 {
		p.PreferredPersona = profile.PresetPersonas[s.personaPick]
	} else {
		p.PreferredPersona = profile.PersonaCustom
		p.CustomPersona = &profile.CustomPersona{
			Name:   s.customInputs[0].Value(),
			Traits: s.customInputs[1].Value(),
			Adopt:  s.customInputs[2].Value(),
			Avoid:  s.customInputs[3].Value(),
		}
	}

	s.draft = p
}

func (s *OnboardingScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("PODIUM"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Daily speech protocol"))
	b.WriteString("\n\n")

	switch s.step {
	case stepIdentity:
		b.WriteString(s.viewIdentity())
	case stepPersona:
		b.WriteString(theme.Body.Render("Choose the voice you are training toward:"))
		b.WriteString("\n\n")
		b.WriteString(s.personaMenu.View())
	case stepCustomPersona:
		b.WriteString(theme.Body.Render("Define your persona:"))
		b.WriteString("\n\n")
		for i := range s.customInputs {
			b.WriteString(s.customInputs[i].View())
			b.WriteString("\n\n")
		}
	case stepConfirm:
		b.WriteString(s.viewConfirm())
	}

	if s.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(theme.Bad.Render("Could not save profile: " + s.saveErr))
	}
	if s.saving {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Saving..."))
	}

	return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(b.String())
}

func (s *OnboardingScreen) viewIdentity() string {
	var b strings.Builder
	b.WriteString(s.nameInput.View())
	b.WriteString("\n\n")

	if s.nameDone {
		b.WriteString(theme.Body.Render("What are you training for?"))
		b.WriteString("\n\n")
		if s.typingGoal {
			b.WriteString(s.goalInput.View())
		} else {
			b.WriteString(s.goalMenu.View())
		}
	}
	return b.String()
}

func (s *OnboardingScreen) viewConfirm() string {
	p := s.draft

	var b strings.Builder
	b.WriteString(theme.Body.Render("The protocol is set:"))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Name      ") + theme.Body.Render(p.Name) + "\n")
	b.WriteString(theme.Hint.Render("Goal      ") + theme.Body.Render(p.PrimaryGoal) + "\n")
	b.WriteString(theme.Hint.Render("Persona   ") + theme.Body.Render(p.PersonaName()) + "\n")
	if p.CustomPersona != nil {
		b.WriteString(theme.Hint.Render("Traits    ") + theme.Body.Render(p.CustomPersona.Traits) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Selected.Render("Day 1 starts now. Press Enter."))
	return theme.Card.Render(b.String())
}
