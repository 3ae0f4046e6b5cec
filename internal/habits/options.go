package habits

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitharbor/internal/models"
)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for createdAt and Today.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLocation sets the timezone that decides which calendar day is today.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithWarningHandler registers a callback for load and save warnings. It may
// run while the store is locked, so it must not call back into the store.
func WithWarningHandler(fn func(error)) Option {
	return func(s *Store) {
		s.onWarning = fn
	}
}

// WithIDGenerator overrides habit id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithAsyncSave moves persistence to a background writer. Mutations return
// as soon as memory is updated; save failures reach the warning handler only.
// Rapid mutations coalesce into a single write of the latest state.
func WithAsyncSave() Option {
	return func(s *Store) {
		s.async = true
	}
}

func defaultID() string {
	return uuid.NewString()
}

// HabitOption sets optional fields on a new habit.
type HabitOption func(*models.Habit)

// WithColor sets the habit color. It must be a palette value.
func WithColor(c models.Color) HabitOption {
	return func(h *models.Habit) {
		h.Color = c
	}
}

// WithFrequency sets the weekdays the habit is scheduled on.
func WithFrequency(freq []models.Weekday) HabitOption {
	return func(h *models.Habit) {
		h.Frequency = append([]models.Weekday{}, freq...)
	}
}
