package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitharbor/internal/models"
	corestats "github.com/julianstephens/habitharbor/internal/stats"
)

const barWidth = 24

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	gradeStyles = map[corestats.Grade]lipgloss.Style{
		corestats.GradeGood: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		corestats.GradeFair: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		corestats.GradePoor: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

type Model struct {
	viewport  viewport.Model
	habits    []models.Habit
	today     time.Time
	weekStart time.Weekday
}

func New(habits []models.Habit, today time.Time, weekStart time.Weekday, width, height int) Model {
	m := Model{
		viewport:  viewport.New(width, height),
		habits:    habits,
		today:     today,
		weekStart: weekStart,
	}
	m.refresh()
	return m
}

func (m *Model) SetHabits(habits []models.Habit, today time.Time) {
	m.habits = habits
	m.today = today
	m.refresh()
}

func (m *Model) SetWeekStart(start time.Weekday) {
	m.weekStart = start
	m.refresh()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.render())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m Model) render() string {
	var b strings.Builder

	week := corestats.WeeklyCompletionFrom(m.habits, m.today, m.weekStart)
	b.WriteString(titleStyle.Render(fmt.Sprintf("Week of %s", week[0].Day.Format("January 2, 2006"))))
	b.WriteString("\n\n")
	for _, d := range week {
		b.WriteString(fmt.Sprintf("  %s  %s %3d%%", d.Weekday, bar(d.Percent), d.Percent))
		if d.Applicable > 0 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d", d.Completed, d.Applicable)))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  Weekly average: %d%%\n\n", week.Average()))

	b.WriteString(titleStyle.Render("Habit performance"))
	b.WriteString("\n\n")
	if len(m.habits) == 0 {
		b.WriteString(mutedStyle.Render("  No habits to summarize."))
		return b.String()
	}

	rows := corestats.RankByCompletion(corestats.SummarizeAll(m.habits, m.today))
	for i, row := range rows {
		name := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Habit.Color.Hex())).Render(row.Habit.Name)
		rate := gradeStyles[corestats.GradeFor(row.CompletionRate)].Render(fmt.Sprintf("%3d%%", row.CompletionRate))
		b.WriteString(fmt.Sprintf("  %d. %s  %s  %s\n", i+1, rate, name,
			mutedStyle.Render(fmt.Sprintf("%d/%d days, streak %d", row.CompletedDays, row.TotalDays, row.CurrentStreak))))
	}
	return b.String()
}

func bar(p int) string {
	filled := corestats.ClampPercent(p) * barWidth / 100
	return barStyle.Render(strings.Repeat("█", filled)) + emptyStyle.Render(strings.Repeat("░", barWidth-filled))
}
