package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitharbor/internal/constants"
	"github.com/julianstephens/habitharbor/internal/habits"
	"github.com/julianstephens/habitharbor/internal/tui/components/week"
	"github.com/julianstephens/habitharbor/internal/tui/forms"
)

// handleFormState drives the add and edit habit forms.
func (m *Model) handleFormState(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.leaveForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		var err error
		if m.state == constants.StateAddHabit {
			err = m.addHabit()
		} else {
			err = m.editHabit()
		}
		if err != nil && !habits.IsSaveWarning(err) {
			// Stay in the form so the user can correct it or cancel with ESC
			m.report(err)
			m.form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.refresh()
		m.leaveForm()
	case huh.StateAborted:
		m.leaveForm()
	}
	return tea.Batch(cmds...)
}

func (m *Model) addHabit() error {
	if _, exists := m.store.FindByName(m.habitForm.Name); exists {
		return errDuplicateName(m.habitForm.Name)
	}
	_, err := m.store.AddHabit(m.habitForm.Name,
		habits.WithColor(m.habitForm.Color),
		habits.WithFrequency(m.habitForm.Frequency),
	)
	return err
}

func (m *Model) editHabit() error {
	h, err := m.store.Habit(m.editingID)
	if err != nil {
		return err
	}
	upd := m.habitForm.Update(h)
	if upd.IsEmpty() {
		return nil
	}
	if upd.Name != nil {
		if other, exists := m.store.FindByName(*upd.Name); exists && other.ID != h.ID {
			return errDuplicateName(*upd.Name)
		}
	}
	return m.store.UpdateHabit(h.ID, upd)
}

func (m *Model) leaveForm() {
	m.form = nil
	m.habitForm = nil
	m.editingID = ""
	m.state = constants.StateWeek
}

// handleConfirmDeleteState handles the delete confirmation state
func (m *Model) handleConfirmDeleteState(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.habitToDeleteID != "" {
				m.report(m.store.DeleteHabit(m.habitToDeleteID))
				m.refresh()
				m.habitToDeleteID = ""
			}
			m.state = constants.StateWeek
		case "n", "N", "esc", "q":
			m.habitToDeleteID = ""
			m.state = constants.StateWeek
		}
	}
	return nil
}

// handleWeekMessages handles messages emitted by the week component.
func (m *Model) handleWeekMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case week.AddHabitMsg:
		m.habitForm = forms.NewHabitFormModel(nil)
		m.form = forms.NewHabitForm(m.habitForm)
		m.state = constants.StateAddHabit
		return true, m.form.Init()

	case week.EditHabitMsg:
		h, err := m.store.Habit(msg.ID)
		if err != nil {
			m.report(err)
			return true, nil
		}
		m.editingID = h.ID
		m.habitForm = forms.NewHabitFormModel(&h)
		m.form = forms.NewHabitForm(m.habitForm)
		m.state = constants.StateEditHabit
		return true, m.form.Init()

	case week.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = constants.StateConfirmDelete
		return true, nil

	case week.ToggleMsg:
		_, err := m.store.ToggleCompletion(msg.ID, msg.Day)
		m.report(err)
		m.refresh()
		return true, nil
	}
	return false, nil
}

// toggleTheme flips between light and dark and stores the choice.
func (m *Model) toggleTheme() {
	next := constants.ThemeLight
	if m.theme == constants.ThemeLight {
		next = constants.ThemeDark
	}
	m.theme = next
	m.report(m.store.SetSetting(constants.SettingTheme, next))
}

func (m Model) habitToDeleteName() string {
	h, err := m.store.Habit(m.habitToDeleteID)
	if err != nil {
		return ""
	}
	return h.Name
}

func errDuplicateName(name string) error {
	return fmt.Errorf("habit with name %q already exists", name)
}
