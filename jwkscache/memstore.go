package jwkscache

import (
	"context"
	"sync"
)

// MemStore is an in-process SecureStore. It is safe for concurrent use and is
// suitable for tests and for deployments that accept losing the cache on
// restart.
type MemStore struct {
	mu      sync.RWMutex
	strings map[string]string
	floats  map[string]float64
}

// NewMemStore constructs an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		strings: make(map[string]string),
		floats:  make(map[string]float64),
	}
}

func (s *MemStore) GetString(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.strings[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemStore) SetString(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strings[key] = value
	return nil
}

func (s *MemStore) GetFloat64(_ context.Context, key string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.floats[key]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

func (s *MemStore) SetFloat64(_ context.Context, key string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats[key] = value
	return nil
}
