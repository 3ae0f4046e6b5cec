// Package stats derives streaks and completion statistics from habit
// snapshots. Every function is pure and leaves its input untouched.
package stats

import (
	"sort"
	"time"

	"github.com/julianstephens/habitharbor/internal/models"
	"github.com/julianstephens/habitharbor/internal/utils"
)

// completedSet returns the day keys with a completed record.
func completedSet(h models.Habit) map[string]bool {
	set := make(map[string]bool, len(h.Records))
	for _, r := range h.Records {
		if r.Completed {
			set[r.Date] = true
		}
	}
	return set
}

// CurrentStreak counts consecutive completed calendar days ending at asOf, or
// at the day before asOf when asOf itself has not been completed yet.
// Frequency is not consulted: every calendar day needs a completion.
func CurrentStreak(h models.Habit, asOf time.Time) int {
	done := completedSet(h)
	if len(done) == 0 {
		return 0
	}

	day := utils.CivilDay(asOf)
	if !done[utils.DayKey(day)] {
		day = utils.AddDays(day, -1)
		if !done[utils.DayKey(day)] {
			return 0
		}
	}

	streak := 0
	for done[utils.DayKey(day)] {
		streak++
		day = utils.AddDays(day, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days in the
// habit's history. Malformed record dates are skipped.
func LongestStreak(h models.Habit) int {
	done := completedSet(h)
	days := make([]time.Time, 0, len(done))
	for key := range done {
		d, err := utils.ParseDay(key)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && utils.AddDays(days[i-1], 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
