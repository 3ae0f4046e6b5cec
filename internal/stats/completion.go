package stats

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/habitharbor/internal/models"
)

// Grade buckets a completion rate for coloring.
type Grade int

const (
	GradePoor Grade = iota
	GradeFair
	GradeGood
)

// HabitSummary is the per-habit performance row.
type HabitSummary struct {
	Habit          models.Habit
	CompletionRate int
	CompletedDays  int
	TotalDays      int
	CurrentStreak  int
}

// percent rounds part/total*100 half away from zero, 0 when total is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// CompletionRate is the share of the habit's records marked completed, as a
// rounded percentage. A habit without records has a rate of 0.
func CompletionRate(h models.Habit) int {
	return percent(h.CompletedDays(), len(h.Records))
}

// Summarize computes the performance row for one habit.
func Summarize(h models.Habit, asOf time.Time) HabitSummary {
	return HabitSummary{
		Habit:          h,
		CompletionRate: CompletionRate(h),
		CompletedDays:  h.CompletedDays(),
		TotalDays:      len(h.Records),
		CurrentStreak:  CurrentStreak(h, asOf),
	}
}

// SummarizeAll returns one row per habit in collection order.
func SummarizeAll(habits []models.Habit, asOf time.Time) []HabitSummary {
	out := make([]HabitSummary, len(habits))
	for i, h := range habits {
		out[i] = Summarize(h, asOf)
	}
	return out
}

// RankByCompletion returns a copy of rows sorted by completion rate,
// highest first. Ties keep their original order.
func RankByCompletion(rows []HabitSummary) []HabitSummary {
	ranked := append([]HabitSummary(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompletionRate > ranked[j].CompletionRate
	})
	return ranked
}

// ClampPercent limits p to [0,100] for bar widths.
func ClampPercent(p int) int {
	return min(100, max(0, p))
}

// GradeFor buckets a rate: 80 and above is good, 50 and above is fair.
func GradeFor(rate int) Grade {
	switch {
	case rate >= 80:
		return GradeGood
	case rate >= 50:
		return GradeFair
	default:
		return GradePoor
	}
}

func (g Grade) String() string {
	switch g {
	case GradeGood:
		return "good"
	case GradeFair:
		return "fair"
	default:
		return "poor"
	}
}
