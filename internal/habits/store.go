// Package habits owns the habit collection. Every mutation goes through a
// Store, which applies it in memory and then persists the whole collection
// through a storage.Adapter.
package habits

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/habitharbor/internal/logger"
	"github.com/julianstephens/habitharbor/internal/models"
	"github.com/julianstephens/habitharbor/internal/storage"
	"github.com/julianstephens/habitharbor/internal/utils"
)

type Store struct {
	adapter storage.Adapter

	mu       sync.RWMutex
	habits   []models.Habit
	settings map[string]json.RawMessage
	loadErr  error
	closed   bool

	now       func() time.Time
	loc       *time.Location
	newID     func() string
	onWarning func(error)

	async  bool
	writer *writer
}

// New creates a store over adapter. Call Open before use.
func New(adapter storage.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter:  adapter,
		habits:   []models.Habit{},
		settings: map[string]json.RawMessage{},
		now:      time.Now,
		loc:      time.Local,
		newID:    defaultID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open prepares the adapter and loads the saved collection. Missing or
// unreadable data leaves the store empty and is reported as a warning; only a
// failure to prepare the adapter is returned.
func (s *Store) Open() error {
	if err := s.adapter.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	s.mu.Lock()

	s.habits = []models.Habit{}
	s.settings = map[string]json.RawMessage{}
	s.loadErr = nil

	data, err := s.adapter.Load()
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Debug("No saved habits, starting empty", "location", s.adapter.GetConfigPath())
	case err != nil:
		s.loadErr = err
	default:
		doc, derr := decode(data)
		if derr != nil {
			s.loadErr = derr
		} else {
			s.habits = doc.Habits
			s.settings = doc.Settings
			logger.Debug("Loaded habits", "count", len(s.habits), "version", doc.Version)
		}
	}

	if s.async && s.writer == nil {
		s.writer = newWriter(s.adapter, s.warn)
	}
	loadErr := s.loadErr
	s.mu.Unlock()

	if loadErr != nil {
		logger.Warn("Failed to load habits, starting empty", "error", loadErr)
		s.warn(loadErr)
	}
	return nil
}

// LoadError returns the error that made Open fall back to an empty state.
func (s *Store) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Flush blocks until queued background saves have been written.
func (s *Store) Flush() {
	s.mu.RLock()
	w := s.writer
	s.mu.RUnlock()
	if w != nil {
		w.flush()
	}
}

// Close flushes pending saves and closes the adapter.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	w := s.writer
	s.writer = nil
	s.mu.Unlock()

	if w != nil {
		w.stop()
	}
	return s.adapter.Close()
}

// Location describes where data is persisted.
func (s *Store) Location() string {
	return s.adapter.GetConfigPath()
}

// Today returns the current time in the store's timezone.
func (s *Store) Today() time.Time {
	s.mu.RLock()
	loc := s.loc
	s.mu.RUnlock()
	return s.now().In(loc)
}

// SetLocation changes the timezone after Open, for a timezone read from
// settings. A nil loc is ignored.
func (s *Store) SetLocation(loc *time.Location) {
	if loc == nil {
		return
	}
	s.mu.Lock()
	s.loc = loc
	s.mu.Unlock()
}

func (s *Store) warn(err error) {
	if s.onWarning != nil && err != nil {
		s.onWarning(err)
	}
}

// persist serializes the collection and hands it to the adapter. Callers
// hold s.mu.
func (s *Store) persist() error {
	data, err := storage.Encode(storage.Document{Habits: s.habits, Settings: s.settings})
	if err != nil {
		return &SaveError{Err: err}
	}

	if s.writer != nil {
		s.writer.enqueue(data)
		return nil
	}

	if err := s.adapter.Save(data); err != nil {
		logger.Warn("Failed to save habits", "error", err)
		se := &SaveError{Err: err}
		s.warn(se)
		return se
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func validateFrequency(freq []models.Weekday) error {
	for _, f := range freq {
		if _, ok := f.Time(); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidFrequency, f)
		}
	}
	return nil
}

// AddHabit creates a habit with the default color and frequency unless
// overridden. The name is trimmed and must not be empty.
func (s *Store) AddHabit(name string, opts ...HabitOption) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, ErrEmptyName
	}

	h := models.Habit{
		Name:      name,
		Color:     models.DefaultColor,
		Frequency: models.DefaultFrequency(),
		Records:   []models.HabitRecord{},
	}
	for _, opt := range opts {
		opt(&h)
	}
	if !h.Color.Valid() {
		return models.Habit{}, fmt.Errorf("%w: %q", ErrInvalidColor, h.Color)
	}
	if h.Frequency == nil {
		h.Frequency = []models.Weekday{}
	}
	if err := validateFrequency(h.Frequency); err != nil {
		return models.Habit{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Habit{}, ErrClosed
	}

	h.ID = s.uniqueID()
	h.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
	s.habits = append(s.habits, h)
	logger.Debug("Added habit", "id", h.ID, "name", h.Name)

	return h.Clone(), s.persist()
}

// UpdateHabit applies the non-nil fields of upd. Records, id and createdAt
// are never touched. A rejected update changes nothing.
func (s *Store) UpdateHabit(id string, upd models.HabitUpdate) error {
	var name string
	if upd.Name != nil {
		name = strings.TrimSpace(*upd.Name)
		if name == "" {
			return ErrEmptyName
		}
	}
	if upd.Color != nil && !upd.Color.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, *upd.Color)
	}
	if upd.Frequency != nil {
		if err := validateFrequency(*upd.Frequency); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	i := s.indexOf(id)
	if i < 0 {
		return ErrHabitNotFound
	}
	if upd.IsEmpty() {
		return nil
	}

	h := &s.habits[i]
	if upd.Name != nil {
		h.Name = name
	}
	if upd.Color != nil {
		h.Color = *upd.Color
	}
	if upd.Frequency != nil {
		h.Frequency = append([]models.Weekday{}, *upd.Frequency...)
	}
	logger.Debug("Updated habit", "id", id)

	return s.persist()
}

// DeleteHabit removes the habit and all of its records.
func (s *Store) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	i := s.indexOf(id)
	if i < 0 {
		return ErrHabitNotFound
	}
	s.habits = append(s.habits[:i:i], s.habits[i+1:]...)
	logger.Debug("Deleted habit", "id", id)

	return s.persist()
}

// ToggleCompletion flips the record for the calendar day of day, as observed
// in day's own location. A day without a record becomes completed.
func (s *Store) ToggleCompletion(habitID string, day time.Time) (models.HabitRecord, error) {
	return s.toggle(habitID, utils.DayKey(day))
}

// ToggleCompletionOn is ToggleCompletion for a YYYY-MM-DD key.
func (s *Store) ToggleCompletionOn(habitID, day string) (models.HabitRecord, error) {
	t, err := utils.ParseDay(day)
	if err != nil {
		return models.HabitRecord{}, fmt.Errorf("%w: %s", ErrInvalidDate, day)
	}
	return s.toggle(habitID, utils.DayKey(t))
}

func (s *Store) toggle(habitID, key string) (models.HabitRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.HabitRecord{}, ErrClosed
	}

	i := s.indexOf(habitID)
	if i < 0 {
		return models.HabitRecord{}, ErrHabitNotFound
	}

	h := &s.habits[i]
	for j := range h.Records {
		if h.Records[j].Date == key {
			h.Records[j].Completed = !h.Records[j].Completed
			return h.Records[j], s.persist()
		}
	}

	r := models.HabitRecord{
		ID:        models.RecordID(habitID, key),
		Date:      key,
		Completed: true,
	}
	h.Records = append(h.Records, r)
	return r, s.persist()
}

// Habits returns a deep copy of the collection in creation order.
func (s *Store) Habits() []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = h.Clone()
	}
	return out
}

// Habit returns a copy of the habit with the given id.
func (s *Store) Habit(id string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Habit{}, ErrHabitNotFound
	}
	return s.habits[i].Clone(), nil
}

// Resolve finds a habit by exact id, then by case-insensitive name.
func (s *Store) Resolve(ref string) (models.Habit, error) {
	if h, err := s.Habit(ref); err == nil {
		return h, nil
	}
	if h, ok := s.FindByName(ref); ok {
		return h, nil
	}
	return models.Habit{}, fmt.Errorf("%w: %q", ErrHabitNotFound, ref)
}

// FindByName returns the first habit whose name matches, ignoring case and
// surrounding space.
func (s *Store) FindByName(name string) (models.Habit, bool) {
	name = strings.TrimSpace(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.habits {
		if strings.EqualFold(h.Name, name) {
			return h.Clone(), true
		}
	}
	return models.Habit{}, false
}

// Len returns the number of habits.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.habits)
}
