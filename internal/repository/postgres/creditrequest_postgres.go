package postgres

import (
	"context"
	"database/sql"

	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
)

// CreditRequestPostgres is a PostgreSQL implementation of
// repository.CreditRequestRepository.
type CreditRequestPostgres struct {
	db *sql.DB
}

// NewCreditRequestPostgres creates a new CreditRequestPostgres repository.
func NewCreditRequestPostgres(db *sql.DB) *CreditRequestPostgres {
	return &CreditRequestPostgres{db: db}
}

var _ repository.CreditRequestRepository = (*CreditRequestPostgres)(nil)

// Create inserts a new credit request row and returns the stored record.
func (r *CreditRequestPostgres) Create(ctx context.Context, req *model.CreditRequest) (*model.CreditRequest, error) {
	const q = `
		INSERT INTO credit_requests (id, user_id, amount, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, amount, reason, status, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		req.ID,
		req.UserID,
		req.Amount,
		req.Reason,
		req.Status,
		req.CreatedAt,
	)
	var out model.CreditRequest
	if err := row.Scan(&out.ID, &out.UserID, &out.Amount, &out.Reason, &out.Status, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByUser returns a user's credit requests, newest first.
func (r *CreditRequestPostgres) ListByUser(ctx context.Context, userID string) ([]model.CreditRequest, error) {
	const q = `
		SELECT id, user_id, amount, reason, status, created_at
		FROM credit_requests
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CreditRequest, 0)
	for rows.Next() {
		var req model.CreditRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Amount, &req.Reason, &req.Status, &req.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
