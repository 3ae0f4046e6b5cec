package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitharbor/internal/constants"
	"github.com/julianstephens/habitharbor/internal/habits"
	corestats "github.com/julianstephens/habitharbor/internal/stats"
	"github.com/julianstephens/habitharbor/internal/tui/components/stats"
	"github.com/julianstephens/habitharbor/internal/tui/components/week"
	"github.com/julianstephens/habitharbor/internal/tui/forms"
	"github.com/julianstephens/habitharbor/internal/utils"
)

// tabCount is the number of top level tabs (Week, Stats).
const tabCount = 2

// WarningMsg carries a store warning into the program.
type WarningMsg struct {
	Err error
}

type quoteTickMsg time.Time

type Model struct {
	store           *habits.Store
	state           constants.SessionState
	keys            KeyMap
	help            help.Model
	weekModel       week.Model
	statsModel      stats.Model
	form            *huh.Form
	habitForm       *forms.HabitFormModel
	editingID       string
	habitToDeleteID string
	quote           int
	theme           string
	warning         string
	quitting        bool
	width           int
	height          int
}

func NewModel(store *habits.Store) Model {
	today := store.Today()
	list := store.Habits()

	weekStart, err := utils.ParseWeekStart(store.SettingString(constants.SettingWeekStart, ""))
	if err != nil {
		weekStart = corestats.DefaultWeekStart
	}

	m := Model{
		store:      store,
		state:      constants.StateWeek,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		weekModel:  week.New(list, today, 0, 0),
		statsModel: stats.New(list, today, weekStart, 0, 0),
		theme:      store.SettingString(constants.SettingTheme, constants.ThemeDark),
	}

	if err := store.LoadError(); err != nil {
		m.warning = fmt.Sprintf("Could not load saved habits, starting empty: %v", err)
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateWeek {
		wk := m.weekModel.Keys()
		keys = append(keys, wk.Toggle, wk.Add, wk.Edit, wk.Delete)
	}
	if m.warning != "" {
		keys = append(keys, m.keys.Dismiss)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Theme, m.keys.Dismiss}
	if m.state != constants.StateWeek {
		return [][]key.Binding{global}
	}
	return [][]key.Binding{global, m.weekModel.Keys().Bindings()}
}

func (m Model) Init() tea.Cmd {
	return tickQuote()
}

func tickQuote() tea.Cmd {
	return tea.Tick(constants.QuoteInterval, func(t time.Time) tea.Msg {
		return quoteTickMsg(t)
	})
}

// refresh reloads both tabs from the store.
func (m *Model) refresh() {
	list := m.store.Habits()
	today := m.store.Today()
	m.weekModel.SetHabits(list, today)
	m.statsModel.SetHabits(list, today)
}

// report surfaces an operation error in the banner. Save warnings arrive
// separately as a WarningMsg.
func (m *Model) report(err error) {
	if err == nil || habits.IsSaveWarning(err) {
		return
	}
	m.warning = err.Error()
}
