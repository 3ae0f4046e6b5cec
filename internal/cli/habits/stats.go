package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitharbor/internal/cli"
	"github.com/julianstephens/habitharbor/internal/stats"
	"github.com/julianstephens/habitharbor/internal/utils"
)

type StatsCmd struct {
	Week      string `help:"Any day in the week to report (YYYY-MM-DD, default: this week)." default:""`
	WeekStart string `help:"First day of the week: sun or mon (default: weekStart setting)." default:""`
}

const barWidth = 20

func (c *StatsCmd) Run(ctx *cli.Context) error {
	habits := ctx.Store.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	weekOf, err := ctx.ResolveDay(c.Week)
	if err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Week)
	}
	start, err := ctx.WeekStart(c.WeekStart)
	if err != nil {
		return err
	}
	today := utils.CivilDay(ctx.Store.Today())

	week := stats.WeeklyCompletionFrom(habits, weekOf, start)
	ctx.Printf("Week of %s:\n\n", utils.DayKey(week[0].Day))
	for _, d := range week {
		ctx.Printf("  %s %s  %s %3d%%  (%d/%d)\n",
			d.Weekday, d.Day.Format("01/02"), bar(d.Percent), d.Percent, d.Completed, d.Applicable)
	}
	ctx.Printf("\n  Average: %d%%\n\n", week.Average())

	ctx.Println("Habit performance:")
	ctx.Println()
	ctx.Printf("  %-*s %5s %6s %7s %6s\n", maxNameLen, "Habit", "rate", "streak", "longest", "done")
	for _, row := range stats.RankByCompletion(stats.SummarizeAll(habits, today)) {
		ctx.Printf("  %s %4d%% %6d %7d %6s  %s\n",
			padName(row.Habit.Name),
			row.CompletionRate,
			row.CurrentStreak,
			stats.LongestStreak(row.Habit),
			fmt.Sprintf("%d/%d", row.CompletedDays, row.TotalDays),
			stats.GradeFor(row.CompletionRate),
		)
	}
	return nil
}

func bar(pct int) string {
	filled := stats.ClampPercent(pct) * barWidth / 100
	return strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
}
