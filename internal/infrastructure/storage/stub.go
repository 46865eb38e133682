package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	catalogapp "github.com/komorebi/backend/internal/application/catalog"
)

// StubObjectStorage is an in-memory ObjectStorageService for development
// and tests. Issued upload keys are treated as uploaded so the
// confirmation flow works without a real backend.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated upload URLs
	BaseURL string

	mu      sync.Mutex
	issued  map[string]bool
	deleted map[string]bool
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.invalid",
		issued:  make(map[string]bool),
		deleted: make(map[string]bool),
	}
}

// Ensure StubObjectStorage implements ObjectStorageService
var _ catalogapp.ObjectStorageService = (*StubObjectStorage)(nil)

// GenerateUploadURL returns a fake presigned URL and remembers the key
func (s *StubObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	s.mu.Lock()
	s.issued[storageKey] = true
	delete(s.deleted, storageKey)
	s.mu.Unlock()

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// ObjectExists reports true for any key an upload URL was issued for
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issued[storageKey] && !s.deleted[storageKey], nil
}

// DeleteObject marks the key as deleted
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	s.deleted[storageKey] = true
	s.mu.Unlock()
	return nil
}
