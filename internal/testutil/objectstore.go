package testutil

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Mitrevichin/Job-Tracking-App/internal/objectstore"
)

// MemoryObjectStore is an objectstore.Store keeping objects in memory
type MemoryObjectStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	// FailUpload makes every Upload fail.
	FailUpload bool
}

var _ objectstore.Store = (*MemoryObjectStore)(nil)

// NewMemoryObjectStore returns an empty MemoryObjectStore
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{Objects: map[string][]byte{}}
}

func (s *MemoryObjectStore) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if s.FailUpload {
		return "", errors.New("upload failed")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = b
	return "https://objects.test/" + key, nil
}

func (s *MemoryObjectStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	return nil
}

// Has reports whether key is stored
func (s *MemoryObjectStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Objects[key]
	return ok
}
