package postgres

import (
	"context"
	"database/sql"

	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
)

// ScanPostgres is a PostgreSQL implementation of repository.ScanRepository.
type ScanPostgres struct {
	db *sql.DB
}

// NewScanPostgres creates a new ScanPostgres repository.
func NewScanPostgres(db *sql.DB) *ScanPostgres {
	return &ScanPostgres{db: db}
}

var _ repository.ScanRepository = (*ScanPostgres)(nil)

// Create appends a scan record row and returns the stored record.
func (r *ScanPostgres) Create(ctx context.Context, rec *model.ScanRecord) (*model.ScanRecord, error) {
	const q = `
		INSERT INTO scans (id, user_id, document_id, match_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, document_id, match_count, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.UserID,
		rec.DocumentID,
		rec.MatchCount,
		rec.CreatedAt,
	)
	var out model.ScanRecord
	if err := row.Scan(&out.ID, &out.UserID, &out.DocumentID, &out.MatchCount, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByUser returns a user's scan records, newest first, with a total count.
func (r *ScanPostgres) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.ScanRecord], error) {
	const qCount = `SELECT COUNT(*) FROM scans WHERE user_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, user_id, document_id, match_count, created_at
		FROM scans
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ScanRecord, 0)
	for rows.Next() {
		var rec model.ScanRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.DocumentID, &rec.MatchCount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ScanRecord]{Items: items, Total: total}, nil
}
