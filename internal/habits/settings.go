package habits

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/habitharbor/internal/logger"
	"github.com/julianstephens/habitharbor/internal/models"
	"github.com/julianstephens/habitharbor/internal/storage"
)

// Settings returns a copy of every stored setting.
func (s *Store) Settings() map[string]json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(s.settings))
	for k, v := range s.settings {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Setting decodes the value stored under key into dst. It reports false when
// the key is unset.
func (s *Store) Setting(key string, dst any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.settings[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("failed to decode setting %q: %w", key, err)
	}
	return true, nil
}

// SettingString returns a string setting, or fallback when it is unset or not
// a string.
func (s *Store) SettingString(key, fallback string) string {
	var v string
	ok, err := s.Setting(key, &v)
	if !ok || err != nil {
		return fallback
	}
	return v
}

// SetSetting stores value under key. A nil value removes the key.
func (s *Store) SetSetting(key string, value any) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("setting key cannot be empty")
	}

	var raw json.RawMessage
	if value != nil {
		b, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode setting %q: %w", key, err)
		}
		raw = b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if raw == nil {
		delete(s.settings, key)
	} else {
		s.settings[key] = raw
	}
	return s.persist()
}

// Export returns the collection in the persisted blob format.
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Encode(storage.Document{Habits: s.habits, Settings: s.settings})
}

// Import replaces the whole collection with the decoded blob. A blob that
// does not parse, or that repeats a habit id or holds an invalid record date,
// leaves the store untouched.
func (s *Store) Import(data []byte) error {
	doc, err := decode(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.habits = doc.Habits
	s.settings = doc.Settings
	s.loadErr = nil
	logger.Info("Imported habits", "count", len(s.habits), "version", doc.Version)
	return s.persist()
}

// Reset removes every habit and setting.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.habits = []models.Habit{}
	s.settings = map[string]json.RawMessage{}
	s.loadErr = nil
	return s.persist()
}
