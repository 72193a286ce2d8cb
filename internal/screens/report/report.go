// Package report renders a session's coaching breakdown in tabbed
// views. It serves double duty: shown right after a session completes,
// and reopened from the dashboard for any past session.
package report

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/router"
	"github.com/abhisek/podium/internal/screen"
	"github.com/abhisek/podium/internal/ui/components"
	"github.com/abhisek/podium/internal/ui/layout"
	"github.com/abhisek/podium/internal/ui/theme"
)

type tab int

const (
	tabOverview tab = iota
	tabRefinement
	tabVerbal
	tabDelivery
	tabMannerisms
)

var tabNames = []string{"Overview", "Master's Revision", "Verbal", "Delivery", "Mannerisms"}

// ReportScreen shows one session's full analysis.
type ReportScreen struct {
	orchestrator *coach.Coach
	record       coach.SessionRecord
	active       tab
	scroll       int
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)
var _ screen.BackGuard = (*ReportScreen)(nil)

// New creates a ReportScreen for the given session record.
func New(orchestrator *coach.Coach, rec coach.SessionRecord) *ReportScreen {
	return &ReportScreen{
		orchestrator: orchestrator,
		record:       rec,
	}
}

func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

func (s *ReportScreen) Title() string {
	return "The Verdict"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Switch tab"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Done"},
	}
}

// ConfirmBack settles a freshly completed session before leaving.
func (s *ReportScreen) ConfirmBack() bool {
	if s.orchestrator.State() == coach.StateCompleted {
		s.orchestrator.Acknowledge()
	}
	return true
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		if s.active > 0 {
			s.active--
			s.scroll = 0
		}
	case "right", "l", "tab":
		if int(s.active) < len(tabNames)-1 {
			s.active++
			s.scroll = 0
		}
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		s.scroll++
	case "enter":
		// Enter behaves like Esc on a fresh report: settle and go home.
		if s.orchestrator.State() == coach.StateCompleted {
			s.orchestrator.Acknowledge()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ReportScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderTabs(width))
	b.WriteString("\n\n")

	var body string
	switch s.active {
	case tabOverview:
		body = s.viewOverview(width)
	case tabRefinement:
		body = s.viewRefinement(width)
	case tabVerbal:
		body = s.viewVerbal(width)
	case tabDelivery:
		body = s.viewDelivery(width)
	case tabMannerisms:
		body = s.viewMannerisms(width)
	}
	b.WriteString(s.clip(body, height-4))

	return lipgloss.NewStyle().Padding(1, 3).Width(width).Render(b.String())
}

func (s *ReportScreen) renderTabs(width int) string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == s.active {
			parts = append(parts, theme.ButtonActive.Render(name))
		} else {
			parts = append(parts, theme.Hint.Render(name))
		}
	}
	return strings.Join(parts, "  ")
}

// clip shows the visible slice of the body honoring the scroll offset.
func (s *ReportScreen) clip(body string, visible int) string {
	if visible < 1 {
		visible = 1
	}
	lines := strings.Split(body, "\n")
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := s.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[s.scroll:end], "\n")
}

func (s *ReportScreen) viewOverview(width int) string {
	a := s.record.Analysis
	barWidth := width - 16
	if barWidth > 50 {
		barWidth = 50
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(s.record.Topic))
	b.WriteString("\n\n")

	if alert := a.Enhancements.RecurringAlert; alert != "" {
		b.WriteString(theme.Bad.Render("⚠ RECURRING  ") + theme.Body.Render(alert))
		b.WriteString("\n\n")
	}

	b.WriteString(components.NewScoreBar("Clarity    ", a.Metrics.ClarityScore, barWidth).View())
	b.WriteString("\n")
	b.WriteString(components.NewScoreBar("Eye Contact", a.Metrics.EyeContactScore, barWidth).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Fillers  ") + theme.Body.Render(fmt.Sprintf("%d", a.Metrics.FillerWordCount)))
	b.WriteString(theme.Hint.Render("    Pace  ") + theme.Body.Render(fmt.Sprintf("%d wpm", a.Metrics.WordsPerMinute)))
	b.WriteString("\n\n")

	b.WriteString(theme.Selected.Render("Focus areas"))
	b.WriteString("\n")
	for _, fa := range a.Enhancements.TopAreas {
		b.WriteString(theme.Body.Render("  • "+fa.Area) + theme.Hint.Render(" — "+fa.Action) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Selected.Render("Tomorrow's drill"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render("  " + a.Enhancements.Exercise))

	return b.String()
}

func (s *ReportScreen) viewRefinement(width int) string {
	a := s.record.Analysis
	inner := width - 12

	var b strings.Builder
	b.WriteString(theme.Selected.Render("What you said"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Width(inner).Render(a.Transcript))
	b.WriteString("\n\n")
	b.WriteString(theme.Selected.Render("The Master's Revision"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(inner).Render(a.RefinedTranscript))
	b.WriteString("\n\n")

	cb := a.CoachingBreakdown
	b.WriteString(theme.Selected.Render("Structural shifts"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(inner).Render(cb.StructuralShifts))
	b.WriteString("\n\n")

	if len(cb.VocabularyElevation) > 0 {
		b.WriteString(theme.Selected.Render("Vocabulary elevation"))
		b.WriteString("\n")
		for _, v := range cb.VocabularyElevation {
			b.WriteString(theme.Bad.Render(v.Original) + theme.Hint.Render(" → ") +
				theme.Good.Render(v.Improved) + theme.Hint.Render("  "+v.Context) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Selected.Render("Efficiency wins"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(inner).Render(cb.EfficiencyWins))

	return b.String()
}

func (s *ReportScreen) viewVerbal(width int) string {
	a := s.record.Analysis
	inner := width - 12

	var b strings.Builder
	if len(a.Verbal.FillerWords) > 0 {
		b.WriteString(theme.Selected.Render("Filler words"))
		b.WriteString("\n")
		b.WriteString(theme.Bad.Render("  " + strings.Join(a.Verbal.FillerWords, ", ")))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Selected.Render("Vocabulary richness"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render("  " + a.Verbal.VocabularyRichness))
	b.WriteString("\n\n")
	b.WriteString(theme.Selected.Render("Word choice vs persona"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(inner).Render(a.Verbal.WordChoiceAlignment))
	b.WriteString("\n\n")

	if len(a.Enhancements.Rephrasing) > 0 {
		b.WriteString(theme.Selected.Render("Rephrase these"))
		b.WriteString("\n")
		for _, r := range a.Enhancements.Rephrasing {
			b.WriteString(theme.Bad.Render("  "+r.Original) + "\n")
			b.WriteString(theme.Good.Render("  "+r.Improved) + "\n")
			b.WriteString(theme.Hint.Render("  "+r.Reason) + "\n\n")
		}
	}

	return b.String()
}

func (s *ReportScreen) viewDelivery(width int) string {
	a := s.record.Analysis
	return s.sectionList(width,
		"Pacing", a.Delivery.Pacing,
		"Tone", a.Delivery.ToneAnalysis,
		"Volume", a.Delivery.VolumeConsistency,
	)
}

func (s *ReportScreen) viewMannerisms(width int) string {
	a := s.record.Analysis
	return s.sectionList(width,
		"Eye contact", a.Mannerisms.EyeContactAnalysis,
		"Gestures", a.Mannerisms.Gestures,
		"Posture", a.Mannerisms.Posture,
	)
}

// sectionList renders alternating heading/body pairs.
func (s *ReportScreen) sectionList(width int, pairs ...string) string {
	inner := width - 12
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(theme.Selected.Render(pairs[i]))
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(inner).Render(pairs[i+1]))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
