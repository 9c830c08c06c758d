package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/madhubv/doc-scanner/internal/metrics"
	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
	"github.com/madhubv/doc-scanner/internal/similarity"
	"github.com/madhubv/doc-scanner/internal/storage"
)

// CreditLedger is the admission gate for scans. It is satisfied by
// *ledger.Ledger; the interface exists so services can be tested with
// mocks.
type CreditLedger interface {
	// TryDebit atomically spends amount credits if the balance covers
	// them, returning the new balance and whether the debit applied.
	TryDebit(ctx context.Context, userID string, amount int) (int, bool, error)
	// Credit adds amount credits and returns the new balance.
	Credit(ctx context.Context, userID string, amount int) (int, error)
}

// scanCost is the number of credits one scan consumes.
const scanCost = 1

// ScanResult is returned for a successful scan: the newly stored
// document, its ranked matches, and the balance left after the debit.
type ScanResult struct {
	Document   model.Document      `json:"document"`
	Matches    []model.MatchResult `json:"matches"`
	NewBalance int                 `json:"new_balance"`
}

// ScanHistoryResult is the service-level DTO for paginated scan records.
type ScanHistoryResult struct {
	Items []model.ScanRecord `json:"data"`
	Total int                `json:"total"`
}

// ScanService runs the scan pipeline: admit via the ledger, match
// against the corpus, persist the document and the scan record.
type ScanService interface {
	// Scan spends one credit, matches text against the corpus, appends
	// the document and a scan record, and returns the ranked matches.
	// A failure after the debit refunds the credit before returning.
	Scan(ctx context.Context, userID, title, text string) (*ScanResult, error)

	// History returns the user's scan records, newest first.
	History(ctx context.Context, userID string, limit, offset int) (*ScanHistoryResult, error)
}

type scanService struct {
	docs    repository.DocumentRepository
	scans   repository.ScanRepository
	ledger  CreditLedger
	archive storage.Archive

	threshold float64
	topK      int
}

// NewScanService constructs a ScanService with the given match settings.
func NewScanService(
	docs repository.DocumentRepository,
	scans repository.ScanRepository,
	ledger CreditLedger,
	archive storage.Archive,
	threshold float64,
	topK int,
) ScanService {
	return &scanService{
		docs:      docs,
		scans:     scans,
		ledger:    ledger,
		archive:   archive,
		threshold: threshold,
		topK:      topK,
	}
}

func (s *scanService) Scan(ctx context.Context, userID, title, text string) (*ScanResult, error) {
	// Validation happens before the debit; a rejected request must not
	// touch any state.
	if userID == "" {
		metrics.ScansTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		metrics.ScansTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, fmt.Errorf("%w: document text is empty", ErrInvalidInput)
	}

	balance, ok, err := s.ledger.TryDebit(ctx, userID, scanCost)
	if err != nil {
		metrics.ScansTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	if !ok {
		metrics.ScansTotal.WithLabelValues(metrics.OutcomeInsufficient).Inc()
		return nil, ErrInsufficientCredits
	}

	res, err := s.record(ctx, userID, title, text, balance)
	if err != nil {
		metrics.ScansTotal.WithLabelValues(metrics.OutcomeError).Inc()
		// The debit and the recording are logically one transaction;
		// with no durable transaction spanning both, the compensating
		// credit is the recovery mechanism.
		if _, cErr := s.ledger.Credit(ctx, userID, scanCost); cErr != nil {
			return nil, fmt.Errorf("%v; compensating credit failed: %w", err, cErr)
		}
		return nil, err
	}

	metrics.ScansTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.CreditsSpent.Add(scanCost)
	return res, nil
}

// record runs the Matching and Recording stages. Any error it returns
// happens after a successful debit, so the caller compensates.
func (s *scanService) record(ctx context.Context, userID, title, text string, balance int) (*ScanResult, error) {
	corpus, err := s.docs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read corpus: %v", ErrStorageFailure, err)
	}

	matches := similarity.Match(similarity.Normalize(text), corpus, s.threshold, s.topK)

	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Document %d", len(corpus)+1)
	}
	now := time.Now().UTC()
	doc := model.Document{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   text,
		CreatedAt: now,
	}

	key := ArchiveKey(doc.ID)
	if _, err := s.archive.Put(ctx, key, strings.NewReader(text), int64(len(text)), "text/plain; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("%w: archive document: %v", ErrStorageFailure, err)
	}

	stored, err := s.docs.Create(ctx, &doc)
	if err != nil {
		// Keep the archive consistent with the corpus.
		if delErr := s.archive.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("%w: append document: %v; rollback delete failed: %v", ErrStorageFailure, err, delErr)
		}
		return nil, fmt.Errorf("%w: append document: %v", ErrStorageFailure, err)
	}

	rec := model.ScanRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		DocumentID: stored.ID,
		MatchCount: len(matches),
		CreatedAt:  now,
	}
	if _, err := s.scans.Create(ctx, &rec); err != nil {
		return nil, fmt.Errorf("%w: append scan record: %v", ErrStorageFailure, err)
	}

	return &ScanResult{Document: *stored, Matches: matches, NewBalance: balance}, nil
}

// History returns paginated scan records without exposing repository types.
func (s *scanService) History(ctx context.Context, userID string, limit, offset int) (*ScanHistoryResult, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.scans.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ScanHistoryResult{Items: res.Items, Total: res.Total}, nil
}
