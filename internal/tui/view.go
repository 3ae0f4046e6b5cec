package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitharbor/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateWeek:
		content = docStyle.Render(m.weekModel.View())
	case constants.StateStats:
		content = docStyle.Render(m.statsModel.View())
	case constants.StateAddHabit, constants.StateEditHabit:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var banner string
	if m.warning != "" {
		banner = bannerStyle.Render("⚠ " + m.warning)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		themeFor(m.theme).quote.Render(constants.Quotes[m.quote]),
		banner,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	t := themeFor(m.theme)
	var tabs []string
	tabTitles := []string{"Week", "Stats"}
	for i, title := range tabTitles {
		if m.activeTab() == constants.SessionState(i) {
			tabs = append(tabs, t.activeTab.Render(title))
		} else {
			tabs = append(tabs, t.inactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// activeTab maps overlay states back to the tab they were opened from.
func (m Model) activeTab() constants.SessionState {
	if m.state == constants.StateStats {
		return constants.StateStats
	}
	return constants.StateWeek
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q and all of its history?", m.habitToDeleteName())),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
