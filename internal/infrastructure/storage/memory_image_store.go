package storage

import (
	"context"
	"sync"

	"copiadora_xpto/internal/usecase/interfaces"
)

// MemoryImageStore keeps image bytes in process memory.
type MemoryImageStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ interfaces.IImageStorage = (*MemoryImageStore)(nil)

func NewMemoryImageStore() *MemoryImageStore {
	return &MemoryImageStore{objects: make(map[string][]byte)}
}

func (s *MemoryImageStore) Store(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), body...)
	return key, nil
}

func (s *MemoryImageStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	return nil
}

func (s *MemoryImageStore) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[path]
	return b, ok
}

func (s *MemoryImageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
