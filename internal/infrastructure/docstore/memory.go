// Package docstore provides an in-memory structured document store for
// single-process deployments and tests.
package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*domain.StructuredDocument
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*domain.StructuredDocument)}
}

func (s *MemoryStore) Save(_ context.Context, doc *domain.StructuredDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; exists {
		return nil
	}
	s.docs[doc.ID] = doc
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*domain.StructuredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get structured document", fmt.Errorf("id %s", id))
	}
	return doc, nil
}
