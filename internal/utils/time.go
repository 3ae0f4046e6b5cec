package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitharbor/internal/constants"
)

// Calendar days are carried as time.Time values at midnight UTC. Keeping them
// in UTC makes AddDate step exactly one civil day regardless of DST.

// CivilDay returns midnight UTC of t's calendar day as observed in t's location.
func CivilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey formats the calendar day of t (in t's location) as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD key into midnight UTC of that day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// MustParseDay is ParseDay for literals known to be valid. It panics otherwise.
func MustParseDay(s string) time.Time {
	t, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// AddDays moves a civil day by n days.
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// WeekStart returns the civil day on which the week containing t begins.
func WeekStart(t time.Time, start time.Weekday) time.Time {
	day := CivilDay(t)
	offset := (int(day.Weekday()) - int(start) + 7) % 7
	return AddDays(day, -offset)
}

// WeekDays returns the seven civil days of the week containing t.
func WeekDays(t time.Time, start time.Weekday) [7]time.Time {
	var days [7]time.Time
	first := WeekStart(t, start)
	for i := range days {
		days[i] = AddDays(first, i)
	}
	return days
}

// ParseWeekStart accepts "sun"/"sunday" or "mon"/"monday".
func ParseWeekStart(s string) (time.Weekday, error) {
	switch s {
	case "", "sun", "sunday", "Sun", "Sunday":
		return time.Sunday, nil
	case "mon", "monday", "Mon", "Monday":
		return time.Monday, nil
	}
	return 0, fmt.Errorf("invalid week start %q (expected sun or mon)", s)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
