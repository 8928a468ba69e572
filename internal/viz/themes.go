package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the menu and the side panel. The canvas keeps the colors of the
// parameters.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Select  lipgloss.Color
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Error   lipgloss.Color
}

var (
	// ThemePoi follows the default hand and poi marker colors.
	ThemePoi = Theme{
		Name:    "poi",
		Title:   lipgloss.Color("#00ffcc"),
		Select:  lipgloss.Color("#ffcc00"),
		Border:  lipgloss.Color("#3a4a48"),
		Muted:   lipgloss.Color("#667777"),
		Running: lipgloss.Color("#00ffcc"),
		Paused:  lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeEmber = Theme{
		Name:    "ember",
		Title:   lipgloss.Color("#ff7a1a"),
		Select:  lipgloss.Color("#ffd166"),
		Border:  lipgloss.Color("#4a2a1a"),
		Muted:   lipgloss.Color("#8a6a5a"),
		Running: lipgloss.Color("#ffb347"),
		Paused:  lipgloss.Color("#c0c0c0"),
		Error:   lipgloss.Color("#ff3030"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Title:   lipgloss.Color("#ffffff"),
		Select:  lipgloss.Color("#ffffff"),
		Border:  lipgloss.Color("#444444"),
		Muted:   lipgloss.Color("#888888"),
		Running: lipgloss.Color("#dddddd"),
		Paused:  lipgloss.Color("#888888"),
		Error:   lipgloss.Color("#ff0000"),
	}

	CurrentTheme = ThemePoi

	Themes = []Theme{ThemePoi, ThemeEmber, ThemeMono}
)

func init() { applyTheme(CurrentTheme) }

// GetTheme returns the named theme, or the poi theme for unknown names.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePoi
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
	applyTheme(CurrentTheme)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
