package habits

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when a habit name is blank after trimming.
	ErrEmptyName = errors.New("habit name cannot be empty")
	// ErrHabitNotFound is returned when no habit has the given id.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrInvalidColor is returned for colors outside the palette.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInvalidFrequency is returned for unknown weekday tags.
	ErrInvalidFrequency = errors.New("invalid frequency")
	// ErrInvalidDate is returned for malformed YYYY-MM-DD keys.
	ErrInvalidDate = errors.New("invalid date")
	// ErrDuplicateID is returned when a loaded blob holds two habits with one id.
	ErrDuplicateID = errors.New("duplicate habit id")
	// ErrClosed is returned by mutations after Close.
	ErrClosed = errors.New("habit store is closed")
)

// SaveError reports that a mutation was applied in memory but could not be
// persisted. It is a warning: the in-memory state is kept.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("changes kept in memory but not saved: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// IsSaveWarning reports whether err is a persistence warning rather than a
// rejected operation.
func IsSaveWarning(err error) bool {
	var se *SaveError
	return errors.As(err, &se)
}
