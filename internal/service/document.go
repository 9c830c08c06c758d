package service

import (
	"context"
	"database/sql"
	"errors"
	"path"
	"time"

	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
	"github.com/madhubv/doc-scanner/internal/storage"
)

// downloadExpiry bounds how long a presigned archive URL stays valid.
const downloadExpiry = 15 * time.Minute

// ArchiveKey returns the object-store key for a document's raw text.
func ArchiveKey(documentID string) string {
	return path.Join("documents", documentID+".txt")
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService exposes read access to the corpus. Documents are only
// ever created through a scan, so there is no write operation here.
type DocumentService interface {
	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// DownloadURL returns a presigned URL for the document's archived
	// raw text.
	DownloadURL(ctx context.Context, id string) (string, error)
}

type documentService struct {
	repo    repository.DocumentRepository
	archive storage.Archive
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository, archive storage.Archive) DocumentService {
	return &documentService{repo: repo, archive: archive}
}

func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	// Confirm the document exists before signing a URL for it.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	url, err := s.archive.PresignGet(ctx, ArchiveKey(id), downloadExpiry)
	if err != nil {
		return "", err
	}
	return url, nil
}
