package memory

import (
	"context"
	"sync"

	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
)

// CreditRequestMemory is an in-memory repository.CreditRequestRepository.
type CreditRequestMemory struct {
	mu     sync.RWMutex
	byUser map[string][]model.CreditRequest
}

// NewCreditRequestMemory creates an empty in-memory credit request repository.
func NewCreditRequestMemory() *CreditRequestMemory {
	return &CreditRequestMemory{byUser: make(map[string][]model.CreditRequest)}
}

var _ repository.CreditRequestRepository = (*CreditRequestMemory)(nil)

func (r *CreditRequestMemory) Create(_ context.Context, req *model.CreditRequest) (*model.CreditRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[req.UserID] = append(r.byUser[req.UserID], *req)

	out := *req
	return &out, nil
}

func (r *CreditRequestMemory) ListByUser(_ context.Context, userID string) ([]model.CreditRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reqs := r.byUser[userID]
	out := make([]model.CreditRequest, 0, len(reqs))
	// Newest first.
	for i := len(reqs) - 1; i >= 0; i-- {
		out = append(out, reqs[i])
	}
	return out, nil
}
