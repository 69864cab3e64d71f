package memory

import (
	"context"
	"io"
	"sync"
)

// Storage keeps uploaded files in memory. Used in tests.
type Storage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// New creates an empty in-memory file storage.
func New() *Storage {
	return &Storage{files: make(map[string][]byte)}
}

// Upload stores the content under the key.
func (s *Storage) Upload(_ context.Context, key string, _ string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return nil
}

// Delete removes the key. Missing keys are ignored.
func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}

// URL returns a synthetic URL for the key.
func (s *Storage) URL(key string) string {
	return "memory://" + key
}

// Get returns the stored bytes for a key. Test helper.
func (s *Storage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[key]
	return data, ok
}
