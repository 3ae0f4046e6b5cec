package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitharbor/internal/constants"
)

var (
	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Bold(true).
			Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// theme holds the styles that change with the light/dark setting.
type theme struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	quote       lipgloss.Style
}

var themes = map[string]theme{
	constants.ThemeDark: {
		activeTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true),
		inactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1),
		quote: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true).
			Padding(0, 2),
	},
	constants.ThemeLight: {
		activeTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("25")).
			Padding(0, 1).
			Bold(true),
		inactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Padding(0, 1),
		quote: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Italic(true).
			Padding(0, 2),
	},
}

func themeFor(name string) theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[constants.ThemeDark]
}
