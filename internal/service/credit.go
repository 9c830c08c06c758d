package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/madhubv/doc-scanner/internal/metrics"
	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
)

// Per-request bounds carried over from the credit request form.
const (
	minCreditRequest = 1
	maxCreditRequest = 100
)

// CreditRequestResult carries the approved request and the balance it
// produced.
type CreditRequestResult struct {
	Request    model.CreditRequest `json:"request"`
	NewBalance int                 `json:"new_balance"`
}

// CreditService handles credit requests. Approval is currently a stub
// that grants immediately; the request rows keep an audit trail a real
// approval workflow can take over.
type CreditService interface {
	// Request grants amount credits to the user and records the
	// approved request.
	Request(ctx context.Context, userID string, amount int, reason string) (*CreditRequestResult, error)

	// ListByUser returns the user's credit requests, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.CreditRequest, error)
}

type creditService struct {
	requests repository.CreditRequestRepository
	accounts repository.AccountRepository
	ledger   CreditLedger
}

// NewCreditService constructs a new CreditService.
func NewCreditService(requests repository.CreditRequestRepository, accounts repository.AccountRepository, ledger CreditLedger) CreditService {
	return &creditService{requests: requests, accounts: accounts, ledger: ledger}
}

func (s *creditService) Request(ctx context.Context, userID string, amount int, reason string) (*CreditRequestResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if amount < minCreditRequest || amount > maxCreditRequest {
		return nil, fmt.Errorf("%w: amount must be between %d and %d", ErrInvalidInput, minCreditRequest, maxCreditRequest)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	if _, err := s.accounts.FindByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	balance, err := s.ledger.Credit(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: grant credits: %v", ErrStorageFailure, err)
	}

	req := model.CreditRequest{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		Status:    model.CreditRequestApproved,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.requests.Create(ctx, &req)
	if err != nil {
		// The grant and its record are one logical transaction; take
		// the credits back before surfacing the failure.
		if _, _, dErr := s.ledger.TryDebit(ctx, userID, amount); dErr != nil {
			return nil, fmt.Errorf("%w: record request: %v; compensating debit failed: %v", ErrStorageFailure, err, dErr)
		}
		return nil, fmt.Errorf("%w: record request: %v", ErrStorageFailure, err)
	}

	metrics.CreditsGranted.Add(float64(amount))
	return &CreditRequestResult{Request: *stored, NewBalance: balance}, nil
}

func (s *creditService) ListByUser(ctx context.Context, userID string) ([]model.CreditRequest, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	return s.requests.ListByUser(ctx, userID)
}
