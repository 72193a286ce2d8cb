package onboarding

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/profile"
	"github.com/abhisek/podium/internal/router"
	"github.com/abhisek/podium/internal/screen"
)

type memPersister struct {
	saveErr  error
	profiles []profile.UserProfile
}

func (m *memPersister) SaveProfile(_ context.Context, p profile.UserProfile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.profiles = append(m.profiles, p)
	return nil
}

func (m *memPersister) AppendSession(_ context.Context, _ coach.SessionRecord) error {
	return nil
}

type fakeScreen struct{}

func (fakeScreen) Init() tea.Cmd { return nil }

func (f fakeScreen) Update(_ tea.Msg) (screen.Screen, tea.Cmd) { return f, nil }

func (fakeScreen) View(_, _ int) string { return "dashboard" }

func (fakeScreen) Title() string { return "dashboard" }

func testWizard(persist *memPersister) (*OnboardingScreen, *coach.Coach) {
	orchestrator := coach.New(persist, profile.UserProfile{}, nil, false)
	s := New(orchestrator, func() screen.Screen { return fakeScreen{} })
	return s, orchestrator
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func down() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyDown}
}

// completePresetFlow walks the wizard to the confirm step using preset
// goal 0 and persona 0.
func completePresetFlow(s *OnboardingScreen) {
	s.nameInput.Model.SetValue("Ada")
	s.Update(enter()) // name accepted
	s.Update(enter()) // goal preset 0
	s.Update(enter()) // persona preset 0
}

func TestOnboarding_Title(t *testing.T) {
	s, _ := testWizard(&memPersister{})
	if s.Title() != "Initiation" {
		t.Errorf("Title = %q, want %q", s.Title(), "Initiation")
	}
}

func TestOnboarding_EmptyNameRejected(t *testing.T) {
	s, _ := testWizard(&memPersister{})

	s.Update(enter())
	if s.nameDone {
		t.Error("empty name must not advance")
	}
}

func TestOnboarding_PresetFlowBuildsDraft(t *testing.T) {
	s, _ := testWizard(&memPersister{})
	completePresetFlow(s)

	if s.step != stepConfirm {
		t.Fatalf("step = %d, want confirm", s.step)
	}
	if s.draft.Name != "Ada" {
		t.Errorf("draft name = %q", s.draft.Name)
	}
	if s.draft.PrimaryGoal != profile.PresetGoals[0] {
		t.Errorf("draft goal = %q", s.draft.PrimaryGoal)
	}
	if s.draft.PreferredPersona != profile.PresetPersonas[0] {
		t.Errorf("draft persona = %q", s.draft.PreferredPersona)
	}
	if s.draft.Level != 1 || s.draft.Streak != 0 {
		t.Errorf("draft level/streak = %d/%d, want 1/0", s.draft.Level, s.draft.Streak)
	}
	if s.draft.IsCustomGoal {
		t.Error("preset goal must not be marked custom")
	}
}

func TestOnboarding_CustomPersonaFlow(t *testing.T) {
	s, _ := testWizard(&memPersister{})
	s.nameInput.Model.SetValue("Ada")
	s.Update(enter())
	s.Update(enter()) // goal preset 0

	// Move to the "build my own" entry at the bottom of the persona menu.
	for range profile.PresetPersonas {
		s.Update(down())
	}
	s.Update(enter())
	if s.step != stepCustomPersona {
		t.Fatalf("step = %d, want custom persona form", s.step)
	}

	s.customInputs[0].Model.SetValue("The Closer")
	s.customInputs[1].Model.SetValue("short declarative sentences")
	s.Update(enter()) // name -> traits
	s.Update(enter()) // traits -> adopt
	s.Update(enter()) // adopt -> avoid
	s.Update(enter()) // submit

	if s.step != stepConfirm {
		t.Fatalf("step = %d, want confirm", s.step)
	}
	if s.draft.PreferredPersona != profile.PersonaCustom {
		t.Errorf("persona = %q, want custom sentinel", s.draft.PreferredPersona)
	}
	if s.draft.CustomPersona == nil || s.draft.CustomPersona.Name != "The Closer" {
		t.Errorf("custom persona = %+v", s.draft.CustomPersona)
	}
}

func TestOnboarding_ConfirmSavesProfile(t *testing.T) {
	persist := &memPersister{}
	s, orchestrator := testWizard(persist)
	completePresetFlow(s)

	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("expected a save command")
	}

	// Run the async save, then feed the result back.
	msg := cmd()
	saved, ok := msg.(savedMsg)
	if !ok {
		t.Fatalf("message = %T, want savedMsg", msg)
	}
	if saved.Err != nil {
		t.Fatalf("save error: %v", saved.Err)
	}

	_, cmd = s.Update(saved)
	if cmd == nil {
		t.Fatal("expected a screen replacement after save")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected a ReplaceScreenMsg to the dashboard")
	}

	if !orchestrator.Onboarded() {
		t.Error("expected onboarding to be complete")
	}
	if len(persist.profiles) != 1 {
		t.Errorf("profiles saved = %d, want 1", len(persist.profiles))
	}
}

func TestOnboarding_SaveFailureShown(t *testing.T) {
	persist := &memPersister{saveErr: errors.New("disk full")}
	s, orchestrator := testWizard(persist)
	completePresetFlow(s)

	_, cmd := s.Update(enter())
	msg := cmd()
	s.Update(msg)

	if s.saveErr == "" {
		t.Error("expected a visible save error")
	}
	if orchestrator.Onboarded() {
		t.Error("a failed save must not complete onboarding")
	}
}

func TestOnboarding_EscRestartsWizard(t *testing.T) {
	s, _ := testWizard(&memPersister{})
	completePresetFlow(s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a restart command")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected a ReplaceScreenMsg")
	}
	fresh, ok := replace.Screen.(*OnboardingScreen)
	if !ok {
		t.Fatal("expected a fresh wizard")
	}
	if fresh.nameDone || fresh.step != stepIdentity {
		t.Error("restarted wizard must begin at the identity step")
	}
}

func TestOnboarding_View(t *testing.T) {
	s, _ := testWizard(&memPersister{})
	if view := s.View(80, 24); view == "" {
		t.Error("expected non-empty view")
	}

	completePresetFlow(s)
	if view := s.View(80, 24); view == "" {
		t.Error("expected non-empty confirm view")
	}
}
