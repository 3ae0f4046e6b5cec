package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitharbor/internal/models"
)

// CurrentVersion is the blob version written by Encode. Blobs without a
// version field are version 0.
const CurrentVersion = 1

// Document is the persisted blob: every habit plus an opaque settings object.
type Document struct {
	Version  int                        `json:"version"`
	Habits   []models.Habit             `json:"habits"`
	Settings map[string]json.RawMessage `json:"settings"`
}

// NewDocument returns an empty document at the current version.
func NewDocument() Document {
	return Document{
		Version:  CurrentVersion,
		Habits:   []models.Habit{},
		Settings: map[string]json.RawMessage{},
	}
}

// Encode serializes doc as indented JSON, stamping the current version.
// doc.Habits is read, never written; callers may pass live store state.
func Encode(doc Document) ([]byte, error) {
	doc.Version = CurrentVersion
	if doc.Settings == nil {
		doc.Settings = map[string]json.RawMessage{}
	}
	habits := make([]models.Habit, len(doc.Habits))
	for i, h := range doc.Habits {
		if h.Frequency == nil {
			h.Frequency = []models.Weekday{}
		}
		if h.Records == nil {
			h.Records = []models.HabitRecord{}
		}
		habits[i] = h
	}
	doc.Habits = habits
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize habits: %w", err)
	}
	return data, nil
}

// Decode parses any supported blob shape: the versioned object, the
// unversioned {habits, settings} object, or a bare array of habits.
func Decode(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{}, fmt.Errorf("failed to parse habits: empty document")
	}

	var doc Document
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc.Habits); err != nil {
			return Document{}, fmt.Errorf("failed to parse habits: %w", err)
		}
	} else {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return Document{}, fmt.Errorf("failed to parse habits: %w", err)
		}
		if doc.Version < 0 || doc.Version > CurrentVersion {
			return Document{}, fmt.Errorf("unsupported data version %d (latest supported is %d)", doc.Version, CurrentVersion)
		}
	}

	if doc.Habits == nil {
		doc.Habits = []models.Habit{}
	}
	if doc.Settings == nil {
		doc.Settings = map[string]json.RawMessage{}
	}
	for i := range doc.Habits {
		h := &doc.Habits[i]
		if h.Color == "" {
			h.Color = models.DefaultColor
		}
		if h.Frequency == nil {
			h.Frequency = []models.Weekday{}
		}
		if h.Records == nil {
			h.Records = []models.HabitRecord{}
		}
	}
	return doc, nil
}
