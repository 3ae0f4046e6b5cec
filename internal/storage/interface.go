package storage

import "errors"

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no stored data")

// Adapter persists the single serialized blob under a fixed key. It knows
// nothing about habits; the habit store hands it bytes.
type Adapter interface {
	// Init prepares the backing storage. It is idempotent.
	Init() error
	Load() ([]byte, error)
	Save(data []byte) error
	Close() error
	// GetConfigPath returns a non-sensitive description of where data lives.
	// File-backed adapters return the path, which also anchors backups.
	GetConfigPath() string
}
