// Package dashboard is the home screen: progression at a glance and the
// entry point into the daily session.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/podium/internal/analysis"
	"github.com/abhisek/podium/internal/capture"
	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/router"
	"github.com/abhisek/podium/internal/screen"
	"github.com/abhisek/podium/internal/screens/practice"
	"github.com/abhisek/podium/internal/screens/report"
	"github.com/abhisek/podium/internal/topicgen"
	"github.com/abhisek/podium/internal/ui/components"
	"github.com/abhisek/podium/internal/ui/theme"
)

// recentShown caps the session list on the dashboard.
const recentShown = 5

// DashboardScreen is the main menu plus a progression summary.
type DashboardScreen struct {
	orchestrator *coach.Coach
	topics       topicgen.Generator
	analyzer     analysis.Analyzer
	recorder     capture.Recorder

	menu components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates the dashboard with injected session dependencies.
func New(orchestrator *coach.Coach, topics topicgen.Generator, analyzer analysis.Analyzer, recorder capture.Recorder) *DashboardScreen {
	s := &DashboardScreen{
		orchestrator: orchestrator,
		topics:       topics,
		analyzer:     analyzer,
		recorder:     recorder,
	}
	s.rebuildMenu()
	return s
}

func (s *DashboardScreen) rebuildMenu() {
	history := s.orchestrator.History()

	items := []components.MenuItem{
		{
			Label: fmt.Sprintf("Begin Daily Protocol · Day %d", s.orchestrator.Day()),
			Action: func() tea.Cmd {
				next := practice.New(s.orchestrator, s.topics, s.analyzer, s.recorder)
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: next}
				}
			},
		},
	}

	if len(history) == 0 {
		items = append(items, components.MenuItem{
			Label:    "Review last session",
			Disabled: true,
		})
	}

	// Every recent session is reopenable, newest first.
	start := len(history) - recentShown
	if start < 0 {
		start = 0
	}
	for i := len(history) - 1; i >= start; i-- {
		rec := history[i]
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("Review %s · %s · clarity %d",
				formatDate(rec.Date), truncate(rec.Topic, 40), rec.Analysis.Metrics.ClarityScore),
			Action: func() tea.Cmd {
				next := report.New(s.orchestrator, rec)
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: next}
				}
			},
		})
	}

	items = append(items, components.MenuItem{
		Label: "Quit",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})

	s.menu = components.NewMenu(items)
}

func (s *DashboardScreen) Init() tea.Cmd {
	// Returning from a session changes day, streak, and history.
	s.rebuildMenu()
	return nil
}

func (s *DashboardScreen) Title() string {
	return "The Ledger"
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// A popped practice or report screen leaves stale labels behind, so
	// refresh on every key while keeping the cursor in place.
	if _, ok := msg.(tea.KeyMsg); ok {
		selected := s.menu.Selected
		s.rebuildMenu()
		if selected < len(s.menu.Items) && !s.menu.Items[selected].Disabled {
			s.menu.Selected = selected
		}
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DashboardScreen) View(width, height int) string {
	p := s.orchestrator.Profile()
	history := s.orchestrator.History()

	var b strings.Builder

	b.WriteString(theme.Title.Width(width - 8).Render("Welcome back, " + p.Name))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width - 8).Render(p.PrimaryGoal + "  ·  " + p.PersonaName()))
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Render("Streak  ") + theme.Selected.Render(fmt.Sprintf("%d days", p.Streak)))
	b.WriteString(theme.Hint.Render("    Sessions  ") + theme.Body.Render(fmt.Sprintf("%d", len(history))))
	if watch := s.orchestrator.Watchlist(); watch != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Watchlist  ") + theme.Body.Render(truncate(watch, width-20)))
	}
	b.WriteString("\n\n")

	if warn := s.orchestrator.PersistWarning(); warn != nil {
		b.WriteString(theme.Bad.Render("⚠ Your last session could not be saved to disk: " + warn.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(s.menu.View())

	return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(b.String())
}

func formatDate(rfc3339 string) string {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return t.Local().Format("Jan 02")
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
