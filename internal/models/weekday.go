package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is the three letter tag stored in a habit's frequency.
type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

// Weekdays lists the tags in display order, Monday first.
var Weekdays = []Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

// DefaultFrequency returns a fresh copy of the frequency new habits start with.
func DefaultFrequency() []Weekday {
	return []Weekday{Mon, Wed, Fri}
}

var weekdayTags = [7]Weekday{Sun, Mon, Tue, Wed, Thu, Fri, Sat}

// WeekdayFor maps a time.Weekday to its tag.
func WeekdayFor(wd time.Weekday) Weekday {
	return weekdayTags[wd]
}

// Time returns the time.Weekday for the tag. ok is false for unknown tags.
func (w Weekday) Time() (time.Weekday, bool) {
	for i, t := range weekdayTags {
		if t == w {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// Label returns the full English day name.
func (w Weekday) Label() string {
	if wd, ok := w.Time(); ok {
		return wd.String()
	}
	return string(w)
}

var weekdayNames = map[string]Weekday{
	"sun":       Sun,
	"sunday":    Sun,
	"mon":       Mon,
	"monday":    Mon,
	"tue":       Tue,
	"tuesday":   Tue,
	"wed":       Wed,
	"wednesday": Wed,
	"thu":       Thu,
	"thursday":  Thu,
	"fri":       Fri,
	"friday":    Fri,
	"sat":       Sat,
	"saturday":  Sat,
}

// ParseWeekday accepts a tag, a full day name, or a number (0=Sunday, 6=Saturday).
func ParseWeekday(s string) (Weekday, error) {
	part := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := weekdayNames[part]; ok {
		return wd, nil
	}
	num, err := strconv.Atoi(part)
	if err == nil && num >= 0 && num <= 6 {
		return weekdayTags[num], nil
	}
	return "", fmt.Errorf("invalid weekday: %s", part)
}

// ParseWeekdays parses a comma-separated list of weekdays. Duplicates are
// dropped and the first occurrence keeps its position. An empty string yields
// an empty, non-nil frequency.
func ParseWeekdays(s string) ([]Weekday, error) {
	out := []Weekday{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	seen := make(map[Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		out = append(out, wd)
	}
	return out, nil
}

// FormatFrequency renders a frequency for display.
func FormatFrequency(freq []Weekday) string {
	if len(freq) == 0 {
		return "none"
	}
	if len(freq) == 7 {
		return "daily"
	}
	parts := make([]string, len(freq))
	for i, f := range freq {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}
