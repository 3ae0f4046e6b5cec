package models

import (
	"time"

	"github.com/julianstephens/habitharbor/internal/constants"
)

// Habit is a user-defined recurring activity and its completion history.
type Habit struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Color     Color         `json:"color"`
	Frequency []Weekday     `json:"frequency"`
	CreatedAt time.Time     `json:"createdAt"`
	Records   []HabitRecord `json:"records"`
}

// HabitRecord is the completion state of a habit on one calendar day.
// Date is the natural key within a habit.
type HabitRecord struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// RecordID builds the deterministic record id for a habit and day key.
func RecordID(habitID, day string) string {
	return habitID + "-" + day
}

// Record returns the record for the given day key, if any.
func (h Habit) Record(day string) (HabitRecord, bool) {
	for _, r := range h.Records {
		if r.Date == day {
			return r, true
		}
	}
	return HabitRecord{}, false
}

// IsCompletedOn reports whether the habit has a completed record for the day key.
func (h Habit) IsCompletedOn(day string) bool {
	r, ok := h.Record(day)
	return ok && r.Completed
}

// IsCompletedAt reports completion for the calendar day of t.
func (h Habit) IsCompletedAt(t time.Time) bool {
	return h.IsCompletedOn(t.Format(constants.DateFormat))
}

// ScheduledOn reports whether the habit's frequency contains the weekday.
func (h Habit) ScheduledOn(wd time.Weekday) bool {
	tag := WeekdayFor(wd)
	for _, f := range h.Frequency {
		if f == tag {
			return true
		}
	}
	return false
}

// CompletedDays returns the number of records marked completed.
func (h Habit) CompletedDays() int {
	n := 0
	for _, r := range h.Records {
		if r.Completed {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so callers can't alias store state.
func (h Habit) Clone() Habit {
	c := h
	if h.Frequency != nil {
		c.Frequency = make([]Weekday, len(h.Frequency))
		copy(c.Frequency, h.Frequency)
	}
	if h.Records != nil {
		c.Records = make([]HabitRecord, len(h.Records))
		copy(c.Records, h.Records)
	}
	return c
}
