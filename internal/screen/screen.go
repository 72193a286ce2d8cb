package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/podium/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackGuard is an optional interface for screens that need to intercept
// Esc, e.g. to abandon an in-flight practice session cleanly.
type BackGuard interface {
	// ConfirmBack is called before the router pops the screen. Return
	// false to swallow the key press.
	ConfirmBack() bool
}
