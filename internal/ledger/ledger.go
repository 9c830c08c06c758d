// Package ledger is the single source of truth for credit balances.
// Every balance mutation funnels through TryDebit and Credit; nothing
// else in the system performs read-modify-write on a balance.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/madhubv/doc-scanner/internal/repository"
)

var (
	// ErrAmountInvalid is returned for non-positive debit or negative
	// credit amounts.
	ErrAmountInvalid = errors.New("amount must be positive")

	// ErrInvariantViolation signals a balance observed below zero.
	// Callers must treat this as fatal to the operation and log it.
	ErrInvariantViolation = errors.New("credit balance invariant violated")
)

// Ledger serializes balance mutations per user on top of an
// AccountRepository. The repository's Debit is already atomic; the
// per-user lock additionally orders a debit and its compensating credit
// so rapid double-submits for the same account never interleave.
type Ledger struct {
	accounts repository.AccountRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Ledger over the given account repository.
func New(accounts repository.AccountRepository) *Ledger {
	return &Ledger{
		accounts: accounts,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) lockFor(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lk, ok := l.locks[userID]
	if !ok {
		lk = &sync.Mutex{}
		l.locks[userID] = lk
	}
	return lk
}

// TryDebit atomically decrements the user's balance by amount if it is
// covered, returning the new balance and true. An insufficient balance
// or an unknown user leaves state untouched and returns false; there are
// no partial debits.
func (l *Ledger) TryDebit(ctx context.Context, userID string, amount int) (int, bool, error) {
	if amount <= 0 {
		return 0, false, ErrAmountInvalid
	}

	lk := l.lockFor(userID)
	lk.Lock()
	defer lk.Unlock()

	balance, ok, err := l.accounts.Debit(ctx, userID, amount)
	if err != nil {
		return 0, false, fmt.Errorf("debit account: %w", err)
	}
	if ok && balance < 0 {
		return balance, false, fmt.Errorf("%w: user %s at %d after debit", ErrInvariantViolation, userID, balance)
	}
	return balance, ok, nil
}

// Credit increases the user's balance by amount and returns the new
// balance. It is also the compensation primitive: a failed scan after a
// successful debit refunds through here. A real approval workflow can
// call it unchanged.
func (l *Ledger) Credit(ctx context.Context, userID string, amount int) (int, error) {
	if amount < 0 {
		return 0, ErrAmountInvalid
	}

	lk := l.lockFor(userID)
	lk.Lock()
	defer lk.Unlock()

	balance, err := l.accounts.Credit(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("credit account: %w", err)
	}
	if balance < 0 {
		return balance, fmt.Errorf("%w: user %s at %d after credit", ErrInvariantViolation, userID, balance)
	}
	return balance, nil
}
