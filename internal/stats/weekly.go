package stats

import (
	"time"

	"github.com/julianstephens/habitharbor/internal/models"
	"github.com/julianstephens/habitharbor/internal/utils"
)

// DefaultWeekStart is the first day of the statistics week.
const DefaultWeekStart = time.Sunday

// DayCompletion is the aggregate for one calendar day of a week.
type DayCompletion struct {
	Day        time.Time
	Weekday    models.Weekday
	Applicable int
	Completed  int
	Percent    int
}

// Week holds seven consecutive days starting at the configured week start.
type Week [7]DayCompletion

// Percentages returns the per-day values in week order.
func (w Week) Percentages() [7]int {
	var out [7]int
	for i, d := range w {
		out[i] = d.Percent
	}
	return out
}

// Average is the mean of the daily percentages over days that had at least
// one applicable habit, rounded. It is 0 when no day had any.
func (w Week) Average() int {
	sum, n := 0, 0
	for _, d := range w {
		if d.Applicable == 0 {
			continue
		}
		sum += d.Percent
		n++
	}
	return percent(sum, n*100)
}

// WeeklyCompletion aggregates the week containing weekOf, starting on Sunday.
func WeeklyCompletion(habits []models.Habit, weekOf time.Time) Week {
	return WeeklyCompletionFrom(habits, weekOf, DefaultWeekStart)
}

// WeeklyCompletionFrom aggregates the week containing weekOf beginning on
// start. For each day only habits scheduled on that weekday count; a day with
// no scheduled habits is 0.
func WeeklyCompletionFrom(habits []models.Habit, weekOf time.Time, start time.Weekday) Week {
	var week Week
	for i, day := range utils.WeekDays(weekOf, start) {
		key := utils.DayKey(day)
		dc := DayCompletion{Day: day, Weekday: models.WeekdayFor(day.Weekday())}
		for _, h := range habits {
			if !h.ScheduledOn(day.Weekday()) {
				continue
			}
			dc.Applicable++
			if h.IsCompletedOn(key) {
				dc.Completed++
			}
		}
		dc.Percent = percent(dc.Completed, dc.Applicable)
		week[i] = dc
	}
	return week
}
