package week

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitharbor/internal/models"
	"github.com/julianstephens/habitharbor/internal/stats"
	"github.com/julianstephens/habitharbor/internal/utils"
)

// The grid always starts on Monday.
const gridStart = time.Monday

type AddHabitMsg struct{}

type EditHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type ToggleMsg struct {
	ID  string
	Day time.Time
}

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	Toggle   key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next week"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// Bindings lists the keys for the help view.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Toggle, k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.Today, k.Add, k.Edit, k.Delete}
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	todayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240"))
	streakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const nameWidth = 22

type Model struct {
	habits   []models.Habit
	keys     KeyMap
	cursor   int
	selected time.Time
	today    time.Time
	width    int
	height   int
}

// New creates the week view with today selected.
func New(habits []models.Habit, today time.Time, width, height int) Model {
	day := utils.CivilDay(today)
	return Model{
		habits:   habits,
		keys:     DefaultKeyMap(),
		selected: day,
		today:    day,
		width:    width,
		height:   height,
	}
}

// SetHabits replaces the rows, keeping the cursor in range.
func (m *Model) SetHabits(habits []models.Habit, today time.Time) {
	m.habits = habits
	m.today = utils.CivilDay(today)
	if m.cursor >= len(habits) {
		m.cursor = max(0, len(habits)-1)
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// Selected returns the highlighted day.
func (m Model) Selected() time.Time {
	return m.selected
}

// Current returns the habit under the cursor.
func (m Model) Current() (models.Habit, bool) {
	if m.cursor < 0 || m.cursor >= len(m.habits) {
		return models.Habit{}, false
	}
	return m.habits[m.cursor], true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	msg2, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg2, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg2, m.keys.Down):
		if m.cursor < len(m.habits)-1 {
			m.cursor++
		}
	case key.Matches(msg2, m.keys.PrevDay):
		m.selected = utils.AddDays(m.selected, -1)
	case key.Matches(msg2, m.keys.NextDay):
		m.selected = utils.AddDays(m.selected, 1)
	case key.Matches(msg2, m.keys.PrevWeek):
		m.selected = utils.AddDays(m.selected, -7)
	case key.Matches(msg2, m.keys.NextWeek):
		m.selected = utils.AddDays(m.selected, 7)
	case key.Matches(msg2, m.keys.Today):
		m.selected = m.today
	case key.Matches(msg2, m.keys.Add):
		return m, func() tea.Msg { return AddHabitMsg{} }
	case key.Matches(msg2, m.keys.Toggle):
		if h, ok := m.Current(); ok {
			day := m.selected
			return m, func() tea.Msg { return ToggleMsg{ID: h.ID, Day: day} }
		}
	case key.Matches(msg2, m.keys.Edit):
		if h, ok := m.Current(); ok {
			return m, func() tea.Msg { return EditHabitMsg{ID: h.ID} }
		}
	case key.Matches(msg2, m.keys.Delete):
		if h, ok := m.Current(); ok {
			return m, func() tea.Msg { return DeleteHabitMsg{ID: h.ID} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	days := utils.WeekDays(m.selected, gridStart)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(fmt.Sprintf("Week of %s – %s",
		days[0].Format("Jan 2"), days[6].Format("Jan 2, 2006"))))

	b.WriteString(strings.Repeat(" ", nameWidth+2))
	for _, d := range days {
		label := fmt.Sprintf(" %s %02d ", models.WeekdayFor(d.Weekday()), d.Day())
		switch {
		case d.Equal(m.selected):
			label = selectedStyle.Render(label)
		case d.Equal(m.today):
			label = todayStyle.Render(label)
		}
		b.WriteString(label)
	}
	b.WriteString("\n")

	if len(m.habits) == 0 {
		b.WriteString("\n  No habits yet.\n  Press 'a' to add one.")
		return b.String()
	}

	selectedKey := utils.DayKey(m.selected)
	for i, h := range m.habits {
		pointer := "  "
		if i == m.cursor {
			pointer = "> "
		}

		name := truncate(h.Name, nameWidth)
		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color.Hex())).Width(nameWidth)
		if h.IsCompletedOn(selectedKey) {
			nameStyle = nameStyle.Inherit(doneStyle)
		}
		b.WriteString(pointer + nameStyle.Render(name))

		for _, d := range days {
			cell := m.cell(h, d)
			if i == m.cursor && d.Equal(m.selected) {
				cell = selectedStyle.Render(cell)
			}
			b.WriteString(cell)
		}

		if streak := stats.CurrentStreak(h, m.today); streak > 0 {
			b.WriteString(streakStyle.Render(fmt.Sprintf("  🔥 %d", streak)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// cell renders one day of one habit; columns are eight cells wide.
func (m Model) cell(h models.Habit, d time.Time) string {
	color := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color.Hex()))
	switch {
	case h.IsCompletedOn(utils.DayKey(d)):
		return color.Render("   ●    ")
	case d.After(m.today):
		return mutedStyle.Render("   ·    ")
	case h.ScheduledOn(d.Weekday()):
		return color.Render("   ○    ")
	default:
		return mutedStyle.Render("   ·    ")
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
