package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitharbor/internal/cli"
	core "github.com/julianstephens/habitharbor/internal/habits"
	"github.com/julianstephens/habitharbor/internal/models"
	"github.com/julianstephens/habitharbor/internal/stats"
	"github.com/julianstephens/habitharbor/internal/tui/forms"
	"github.com/julianstephens/habitharbor/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
	Show   HabitShowCmd   `cmd:"" help:"Show habit history (ASCII log) and streaks."`
}

// ParseFrequency accepts "daily", "none", or a comma-separated weekday list.
func ParseFrequency(s string) ([]models.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "all":
		return append([]models.Weekday{}, models.Weekdays...), nil
	case "none":
		return []models.Weekday{}, nil
	}
	freq, err := models.ParseWeekdays(s)
	if err != nil {
		return nil, err
	}
	if len(freq) == 0 {
		return nil, fmt.Errorf("frequency cannot be empty; use \"none\" for an unscheduled habit")
	}
	return freq, nil
}

type HabitAddCmd struct {
	Name      string `arg:"" optional:"" help:"Habit name. Opens a form when omitted."`
	Color     string `help:"Palette color (blue, green, red, yellow, purple, pink, indigo, teal)." default:""`
	Frequency string `help:"Scheduled weekdays, e.g. mon,wed,fri, or daily." default:""`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	name := c.Name
	var opts []core.HabitOption

	if strings.TrimSpace(name) == "" {
		if ctx.In != nil {
			return core.ErrEmptyName
		}
		fm := forms.NewHabitFormModel(nil)
		if err := forms.NewHabitForm(fm).Run(); err != nil {
			return err
		}
		name = fm.Name
		opts = append(opts, core.WithColor(fm.Color), core.WithFrequency(fm.Frequency))
	}

	if c.Color != "" {
		color, err := models.ParseColor(c.Color)
		if err != nil {
			return err
		}
		opts = append(opts, core.WithColor(color))
	}
	if c.Frequency != "" {
		freq, err := ParseFrequency(c.Frequency)
		if err != nil {
			return err
		}
		opts = append(opts, core.WithFrequency(freq))
	}

	if existing, ok := ctx.Store.FindByName(name); ok {
		return fmt.Errorf("habit with name %q already exists (id %s)", existing.Name, existing.ID)
	}

	habit, err := ctx.Store.AddHabit(name, opts...)
	if err := ctx.Persisted(err); err != nil {
		return err
	}

	ctx.Printf("Added habit: %s (%s, %s)\n", habit.Name, habit.Color.Label(), models.FormatFrequency(habit.Frequency))
	return nil
}

type HabitListCmd struct {
	Date string `help:"Show completion for this day (YYYY-MM-DD, default: today)." default:""`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Store.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	key := utils.DayKey(day)

	ctx.Printf("Habits for %s:\n\n", key)
	done := 0
	for _, h := range habits {
		status := "[ ]"
		if h.IsCompletedOn(key) {
			status = "[x]"
			done++
		}
		scheduled := ""
		if !h.ScheduledOn(day.Weekday()) {
			scheduled = " (not scheduled)"
		}
		ctx.Printf("%s %-24s %-8s %-16s%s\n", status, h.Name, h.Color.Label(), models.FormatFrequency(h.Frequency), scheduled)
	}
	ctx.Printf("\nCompleted: %d/%d\n", done, len(habits))
	return nil
}

type HabitEditCmd struct {
	Ref       string  `arg:"" help:"Habit id or name."`
	Name      *string `help:"New name."`
	Color     *string `help:"New palette color."`
	Frequency *string `help:"New scheduled weekdays, e.g. mon,wed,fri, daily or none."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.Resolve(c.Ref)
	if err != nil {
		return err
	}

	var upd models.HabitUpdate
	if c.Name != nil {
		upd = upd.WithName(*c.Name)
	}
	if c.Color != nil {
		color, err := models.ParseColor(*c.Color)
		if err != nil {
			return err
		}
		upd = upd.WithColor(color)
	}
	if c.Frequency != nil {
		freq, err := ParseFrequency(*c.Frequency)
		if err != nil {
			return err
		}
		upd = upd.WithFrequency(freq)
	}

	if upd.IsEmpty() {
		if ctx.In != nil {
			ctx.Println("No changes specified. Use --name, --color or --frequency.")
			return nil
		}
		fm := forms.NewHabitFormModel(&habit)
		if err := forms.NewHabitForm(fm).Run(); err != nil {
			return err
		}
		upd = fm.Update(habit)
		if upd.IsEmpty() {
			ctx.Println("No changes made.")
			return nil
		}
	}

	if upd.Name != nil && !strings.EqualFold(strings.TrimSpace(*upd.Name), habit.Name) {
		if other, ok := ctx.Store.FindByName(*upd.Name); ok && other.ID != habit.ID {
			return fmt.Errorf("habit with name %q already exists (id %s)", other.Name, other.ID)
		}
	}

	if err := ctx.Persisted(ctx.Store.UpdateHabit(habit.ID, upd)); err != nil {
		return err
	}

	updated, err := ctx.Store.Habit(habit.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s (%s, %s)\n", updated.Name, updated.Color.Label(), models.FormatFrequency(updated.Frequency))
	return nil
}

type HabitDeleteCmd struct {
	Ref string `arg:"" help:"Habit id or name to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.Resolve(c.Ref)
	if err != nil {
		return err
	}

	if !c.Yes {
		prompt := fmt.Sprintf("Delete habit %q and its %d record(s)?", habit.Name, len(habit.Records))
		confirmed, err := confirm(ctx, prompt)
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Persisted(ctx.Store.DeleteHabit(habit.ID)); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

// confirm uses a huh form on a terminal and a plain prompt when input is
// redirected.
func confirm(ctx *cli.Context, prompt string) (bool, error) {
	if ctx.In != nil {
		return ctx.Confirm(prompt)
	}
	var confirmed bool
	if err := forms.NewConfirmForm(prompt, &confirmed).Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

type HabitToggleCmd struct {
	Ref  string `arg:"" help:"Habit id or name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.Resolve(c.Ref)
	if err != nil {
		return err
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
	}

	record, err := ctx.Store.ToggleCompletionOn(habit.ID, utils.DayKey(day))
	if err := ctx.Persisted(err); err != nil {
		return err
	}

	if record.Completed {
		ctx.Printf("Marked habit %q for %s\n", habit.Name, record.Date)
	} else {
		ctx.Printf("Unmarked habit %q for %s\n", habit.Name, record.Date)
	}
	return nil
}

type HabitShowCmd struct {
	Ref  string `arg:"" optional:"" help:"Habit id or name. Shows every habit when omitted."`
	Days int    `help:"Number of days to show." default:"14"`
}

const maxNameLen = 20

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive")
	}

	var selected []models.Habit
	if c.Ref != "" {
		habit, err := ctx.Store.Resolve(c.Ref)
		if err != nil {
			return err
		}
		selected = []models.Habit{habit}
	} else {
		selected = ctx.Store.Habits()
	}
	if len(selected) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	today := utils.CivilDay(ctx.Store.Today())
	start := utils.AddDays(today, -(c.Days - 1))

	ctx.Printf("Habit log (last %d days):\n\n", c.Days)

	ctx.Printf("%-*s", maxNameLen, "Habit")
	for i := 0; i < c.Days; i++ {
		ctx.Printf(" %5s", utils.AddDays(start, i).Format("01/02"))
	}
	ctx.Printf("  %6s %7s %5s\n", "streak", "longest", "rate")
	ctx.Println(strings.Repeat("-", maxNameLen+6*c.Days+22))

	for _, h := range selected {
		ctx.Print(padName(h.Name))
		for i := 0; i < c.Days; i++ {
			ctx.Print(cell(h, utils.AddDays(start, i)))
		}
		ctx.Printf("  %6d %7d %4d%%\n", stats.CurrentStreak(h, today), stats.LongestStreak(h), stats.CompletionRate(h))
	}

	ctx.Println("\nx = done, . = missed, blank = not scheduled")
	return nil
}

// padName fits name to maxNameLen terminal cells. Wide runes count double.
func padName(name string) string {
	if lipgloss.Width(name) > maxNameLen {
		r := []rune(name)
		for len(r) > 0 && lipgloss.Width(string(r)) > maxNameLen-3 {
			r = r[:len(r)-1]
		}
		name = string(r) + "..."
	}
	return name + strings.Repeat(" ", maxNameLen-lipgloss.Width(name))
}

func cell(h models.Habit, day time.Time) string {
	switch {
	case h.IsCompletedOn(utils.DayKey(day)):
		return "  x   "
	case h.ScheduledOn(day.Weekday()):
		return "  .   "
	default:
		return "      "
	}
}
