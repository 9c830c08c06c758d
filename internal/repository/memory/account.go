package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
)

// AccountMemory is an in-memory repository.AccountRepository. A single
// mutex serializes the read-check-write of Debit, matching the atomicity
// the conditional UPDATE gives the postgres implementation.
type AccountMemory struct {
	mu       sync.Mutex
	accounts map[string]*model.CreditAccount
}

// NewAccountMemory creates an empty in-memory account repository.
func NewAccountMemory() *AccountMemory {
	return &AccountMemory{accounts: make(map[string]*model.CreditAccount)}
}

var _ repository.AccountRepository = (*AccountMemory)(nil)

func (r *AccountMemory) Create(_ context.Context, acc *model.CreditAccount) (*model.CreditAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[acc.ID]; exists {
		return nil, fmt.Errorf("account %s already exists", acc.ID)
	}
	stored := *acc
	r.accounts[acc.ID] = &stored

	out := stored
	return &out, nil
}

func (r *AccountMemory) FindByID(_ context.Context, id string) (*model.CreditAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s not found", id)
	}
	out := *acc
	return &out, nil
}

func (r *AccountMemory) Debit(_ context.Context, id string, amount int) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok || acc.Credits < amount {
		// Unknown users and short balances both fail closed.
		return 0, false, nil
	}
	acc.Credits -= amount
	return acc.Credits, true, nil
}

func (r *AccountMemory) Credit(_ context.Context, id string, amount int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return 0, fmt.Errorf("account %s not found", id)
	}
	acc.Credits += amount
	return acc.Credits, nil
}
