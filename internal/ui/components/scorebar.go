package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/podium/internal/ui/theme"
)

// ScoreBar displays a 0-100 metric as a horizontal bar. The fill color
// tracks the score: strong sessions read green, weak ones red.
type ScoreBar struct {
	Label string
	Score int
	Width int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(label string, score, width int) ScoreBar {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return ScoreBar{
		Label: label,
		Score: score,
		Width: width,
	}
}

// fillColor maps the score to a color. 80 is the bar for a strong
// session, matching how the dashboard colors clarity.
func (s ScoreBar) fillColor() color.Color {
	switch {
	case s.Score > 80:
		return theme.Success
	case s.Score >= 50:
		return theme.Primary
	default:
		return theme.Error
	}
}

// View renders the score bar.
func (s ScoreBar) View() string {
	var result string

	if s.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(s.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	scoreWidth := 5 // "  100"

	barWidth := s.Width - labelWidth - scoreWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * s.Score / 100
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	filledStr := lipgloss.NewStyle().
		Background(s.fillColor()).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d", s.Score))

	return result
}
