package storage

import (
	"errors"
	"sync"
)

// ErrClosed is returned by MemoryStore after Close.
var ErrClosed = errors.New("storage is closed")

// MemoryStore keeps the blob in memory. It backs --ephemeral sessions and tests.
type MemoryStore struct {
	mu      sync.Mutex
	data    []byte
	closed  bool
	saves   int
	saveErr error
	loadErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith seeds the store with an existing blob.
func NewMemoryStoreWith(data []byte) *MemoryStore {
	return &MemoryStore{data: append([]byte(nil), data...)}
}

func (s *MemoryStore) Init() error {
	return nil
}

func (s *MemoryStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemoryStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data = append([]byte(nil), data...)
	s.saves++
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return "memory"
}

// Saves returns how many saves have succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Data returns a copy of the last saved blob.
func (s *MemoryStore) Data() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}

// SetSaveErr makes subsequent saves fail with err (nil clears it).
func (s *MemoryStore) SetSaveErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// SetLoadErr makes subsequent loads fail with err (nil clears it).
func (s *MemoryStore) SetLoadErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}
