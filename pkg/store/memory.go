package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/glosso/glosso/pkg/catalog"
)

// MemoryStore keeps encoded documents in process memory. Documents are
// stored as encoded bytes, so loaded catalogs never share state with
// saved ones. Intended for tests and ephemeral setups.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Load decodes the stored document for a project.
func (s *MemoryStore) Load(_ context.Context, project string) (*catalog.Catalog, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.docs[project]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, project)
	}
	return catalog.Decode(data)
}

// Save encodes and stores the catalog under its project name.
func (s *MemoryStore) Save(_ context.Context, cat *catalog.Catalog) error {
	if err := validateProject(cat.Project()); err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[cat.Project()] = cat.Encode()
	s.mu.Unlock()
	return nil
}

// Healthcheck always succeeds; memory needs no connectivity.
func (s *MemoryStore) Healthcheck(context.Context) error { return nil }
