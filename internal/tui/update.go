package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitharbor/internal/constants"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// These arrive regardless of state.
	switch msg := msg.(type) {
	case WarningMsg:
		if msg.Err != nil {
			m.warning = msg.Err.Error()
		}
		return m, nil
	case quoteTickMsg:
		m.quote = (m.quote + 1) % len(constants.Quotes)
		return m, tickQuote()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Tabs, quote, banner and help take roughly six lines
		m.weekModel.SetSize(msg.Width-4, msg.Height-8)
		m.statsModel.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case constants.StateAddHabit, constants.StateEditHabit:
		return m, m.handleFormState(msg)
	case constants.StateConfirmDelete:
		return m, m.handleConfirmDeleteState(msg)
	}

	if handled, cmd := m.handleWeekMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			m.toggleTheme()
			return m, nil
		case key.Matches(msg, m.keys.Dismiss):
			m.warning = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateWeek:
		m.weekModel, cmd = m.weekModel.Update(msg)
	case constants.StateStats:
		m.statsModel, cmd = m.statsModel.Update(msg)
	}
	return m, cmd
}
