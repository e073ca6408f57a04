package storage

import (
	"context"
	"io"
	"sync"
)

// MemoryMediaStore keeps objects in a map. Used when no bucket is configured
// and by the handler tests.
type MemoryMediaStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// SaveErr, when set, makes every Save fail. Tests use it to check that a
	// failed upload leaves the user's image reference untouched.
	SaveErr error
}

func NewMemoryMediaStore() *MemoryMediaStore {
	return &MemoryMediaStore{objects: make(map[string][]byte)}
}

func (s *MemoryMediaStore) Save(ctx context.Context, key, contentType string, body io.Reader) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryMediaStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	return ok, nil
}
