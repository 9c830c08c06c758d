package memory

import (
	"context"
	"sync"

	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
)

// ScanMemory is an in-memory repository.ScanRepository.
type ScanMemory struct {
	mu     sync.RWMutex
	byUser map[string][]model.ScanRecord
}

// NewScanMemory creates an empty in-memory scan repository.
func NewScanMemory() *ScanMemory {
	return &ScanMemory{byUser: make(map[string][]model.ScanRecord)}
}

var _ repository.ScanRepository = (*ScanMemory)(nil)

func (r *ScanMemory) Create(_ context.Context, rec *model.ScanRecord) (*model.ScanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[rec.UserID] = append(r.byUser[rec.UserID], *rec)

	out := *rec
	return &out, nil
}

func (r *ScanMemory) ListByUser(_ context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.ScanRecord], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.byUser[userID]
	total := len(recs)
	items := make([]model.ScanRecord, 0, pq.Limit)
	// Newest first.
	for i := total - 1 - pq.Offset; i >= 0 && len(items) < pq.Limit; i-- {
		items = append(items, recs[i])
	}
	return &repository.PageResult[model.ScanRecord]{Items: items, Total: total}, nil
}
