package repository

import (
	"context"

	"github.com/madhubv/doc-scanner/internal/model"
)

// AccountRepository defines data access for credit accounts.
// Balance mutations go through Debit and Credit only; both must be
// atomic so a balance is never observable below zero.
type AccountRepository interface {
	// Create provisions a new account with its initial balance.
	Create(ctx context.Context, acc *model.CreditAccount) (*model.CreditAccount, error)

	// FindByID returns an account by user ID.
	FindByID(ctx context.Context, id string) (*model.CreditAccount, error)

	// Debit atomically subtracts amount if, and only if, the balance
	// covers it. It returns the new balance and whether the debit was
	// applied. An unknown user fails closed (false, no error).
	Debit(ctx context.Context, id string, amount int) (int, bool, error)

	// Credit atomically adds amount and returns the new balance.
	// An unknown user is an error; accounts are provisioned elsewhere.
	Credit(ctx context.Context, id string, amount int) (int, error)
}

// CreditRequestRepository defines data access for credit request rows.
// Requests are append-only.
type CreditRequestRepository interface {
	// Create inserts a new credit request.
	Create(ctx context.Context, req *model.CreditRequest) (*model.CreditRequest, error)

	// ListByUser returns a user's credit requests, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.CreditRequest, error)
}
