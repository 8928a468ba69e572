package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	GlassPanel    lipgloss.Style
	GradientTitle lipgloss.Style
	// selected menu entry
	NeonGlow      lipgloss.Style
	Subtle        lipgloss.Style
	StatusRunning lipgloss.Style
	StatusPaused  lipgloss.Style
	StatusError   lipgloss.Style
	KeyHint       lipgloss.Style
	HeaderStyle   lipgloss.Style
)

// applyTheme rebuilds the shared styles from t.
func applyTheme(t Theme) {
	GlassPanel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)

	GradientTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Title)

	NeonGlow = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Select)

	Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	StatusRunning = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Running)

	StatusPaused = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Paused)

	StatusError = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Error)

	KeyHint = lipgloss.NewStyle().
		Foreground(t.Muted).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Title).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border)
}

// BoxWithTitle renders content in a rounded box with title set into the top border.
func BoxWithTitle(title, content string, width int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(CurrentTheme.Title)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Width(width).
		Padding(0, 1)

	fill := width - len(title) - 6
	if fill < 0 {
		fill = 0
	}
	header := "╭─ " + titleStyle.Render(title) + " " + strings.Repeat("─", fill) + "╮"
	return header + "\n" + box.Render(content)
}
