package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/podium/internal/analysis"
	"github.com/abhisek/podium/internal/capture"
	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/router"
	"github.com/abhisek/podium/internal/screen"
	"github.com/abhisek/podium/internal/screens/dashboard"
	"github.com/abhisek/podium/internal/screens/onboarding"
	"github.com/abhisek/podium/internal/topicgen"
	"github.com/abhisek/podium/internal/ui/layout"
)

// Options carries the wired services the screens need.
type Options struct {
	Orchestrator *coach.Coach
	Topics       topicgen.Generator
	Analyzer     analysis.Analyzer
	Recorder     capture.Recorder
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel picks the initial screen: onboarding on first run, the
// dashboard otherwise.
func newAppModel(opts Options) AppModel {
	dash := func() screen.Screen {
		return dashboard.New(opts.Orchestrator, opts.Topics, opts.Analyzer, opts.Recorder)
	}

	var initial screen.Screen
	if opts.Orchestrator.Onboarded() {
		initial = dash()
	} else {
		initial = onboarding.New(opts.Orchestrator, dash)
	}

	return AppModel{
		router: router.New(initial),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				if guard, ok := m.router.Active().(screen.BackGuard); ok && !guard.ConfirmBack() {
					return m, nil
				}
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	prof := m.opts.Orchestrator.Profile()
	header := layout.RenderHeader(title, m.opts.Orchestrator.Day(), prof.Streak, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
