package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
)

// AccountPostgres is a PostgreSQL implementation of repository.AccountRepository.
// Debit relies on a conditional UPDATE so concurrent debits against the same
// account serialize at the database row; the balance can never be driven
// below zero.
type AccountPostgres struct {
	db *sql.DB
}

// NewAccountPostgres creates a new AccountPostgres repository.
func NewAccountPostgres(db *sql.DB) *AccountPostgres {
	return &AccountPostgres{db: db}
}

var _ repository.AccountRepository = (*AccountPostgres)(nil)

// Create provisions a new account row and returns the stored record.
func (r *AccountPostgres) Create(ctx context.Context, acc *model.CreditAccount) (*model.CreditAccount, error) {
	const q = `
		INSERT INTO users (id, username, credits, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, credits, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		acc.ID,
		acc.Username,
		acc.Credits,
		acc.CreatedAt,
	)
	var out model.CreditAccount
	if err := row.Scan(&out.ID, &out.Username, &out.Credits, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single account by user ID.
func (r *AccountPostgres) FindByID(ctx context.Context, id string) (*model.CreditAccount, error) {
	const q = `
		SELECT id, username, credits, created_at
		FROM users
		WHERE id = $1
	`
	var a model.CreditAccount
	err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Username, &a.Credits, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Debit subtracts amount only when the balance covers it. The WHERE clause
// makes the check-and-decrement a single atomic statement; no row updated
// means either an unknown user or an insufficient balance, both of which
// fail closed.
func (r *AccountPostgres) Debit(ctx context.Context, id string, amount int) (int, bool, error) {
	const q = `
		UPDATE users
		SET credits = credits - $2
		WHERE id = $1 AND credits >= $2
		RETURNING credits
	`
	var balance int
	err := r.db.QueryRowContext(ctx, q, id, amount).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

// Credit adds amount to the balance and returns the new value.
func (r *AccountPostgres) Credit(ctx context.Context, id string, amount int) (int, error) {
	const q = `
		UPDATE users
		SET credits = credits + $2
		WHERE id = $1
		RETURNING credits
	`
	var balance int
	if err := r.db.QueryRowContext(ctx, q, id, amount).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}
