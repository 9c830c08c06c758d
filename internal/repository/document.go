package repository

import (
	"context"

	"github.com/madhubv/doc-scanner/internal/model"
)

// DocumentRepository defines data access for the shared document corpus.
// The corpus is append-only: there is no update or delete. No business
// logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create appends a new document to the corpus.
	// Returns the stored document (may include values set by the backend).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// All returns the full corpus snapshot in insertion order.
	// The matcher relies on this ordering for deterministic tie-breaks.
	All(ctx context.Context) ([]model.Document, error)

	// List returns a paginated page of documents, newest first, plus the
	// total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)
}
