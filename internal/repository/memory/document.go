// Package memory provides in-memory implementations of the repository
// interfaces. They back unit tests and local runs without PostgreSQL and
// honor the same contracts: append-only corpus and history, insertion
// order preserved, balances never negative.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
)

// DocumentMemory is an in-memory repository.DocumentRepository.
// The backing slice preserves insertion order; appends are serialized by
// the mutex so concurrent scans cannot lose entries.
type DocumentMemory struct {
	mu   sync.RWMutex
	docs []model.Document
	byID map[string]int
}

// NewDocumentMemory creates an empty in-memory document repository.
func NewDocumentMemory() *DocumentMemory {
	return &DocumentMemory{byID: make(map[string]int)}
}

var _ repository.DocumentRepository = (*DocumentMemory)(nil)

func (r *DocumentMemory) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[doc.ID]; exists {
		return nil, fmt.Errorf("document %s already exists", doc.ID)
	}
	r.byID[doc.ID] = len(r.docs)
	r.docs = append(r.docs, *doc)

	out := *doc
	return &out, nil
}

func (r *DocumentMemory) FindByID(_ context.Context, id string) (*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("document %s not found", id)
	}
	out := r.docs[idx]
	return &out, nil
}

func (r *DocumentMemory) All(_ context.Context) ([]model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Document, len(r.docs))
	copy(out, r.docs)
	return out, nil
}

func (r *DocumentMemory) List(_ context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.docs)
	items := make([]model.Document, 0, pq.Limit)
	// Newest first, mirroring the postgres ORDER BY position DESC.
	for i := total - 1 - pq.Offset; i >= 0 && len(items) < pq.Limit; i-- {
		items = append(items, r.docs[i])
	}
	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}
