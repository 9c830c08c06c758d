package repository

import (
	"context"

	"github.com/madhubv/doc-scanner/internal/model"
)

// ScanRepository defines data access for scan history records.
// History is append-only, one record per successful scan.
type ScanRepository interface {
	// Create appends a scan record to the owning user's history.
	Create(ctx context.Context, rec *model.ScanRecord) (*model.ScanRecord, error)

	// ListByUser returns a user's scan records, newest first.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.ScanRecord], error)
}
