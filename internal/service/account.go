package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
)

// AccountService provisions credit accounts. It is the only place a
// CreditAccount is created; the ledger never creates accounts implicitly.
type AccountService interface {
	// Register creates an account for the username with the configured
	// initial credit balance.
	Register(ctx context.Context, username string) (*model.CreditAccount, error)

	// Get returns an account by user ID.
	Get(ctx context.Context, id string) (*model.CreditAccount, error)
}

type accountService struct {
	repo           repository.AccountRepository
	initialCredits int
}

// NewAccountService constructs an AccountService granting new accounts
// the given initial balance.
func NewAccountService(repo repository.AccountRepository, initialCredits int) AccountService {
	return &accountService{repo: repo, initialCredits: initialCredits}
}

func (s *accountService) Register(ctx context.Context, username string) (*model.CreditAccount, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	acc := model.CreditAccount{
		ID:        uuid.NewString(),
		Username:  username,
		Credits:   s.initialCredits,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, &acc)
	if err != nil {
		return nil, fmt.Errorf("%w: create account: %v", ErrStorageFailure, err)
	}
	return stored, nil
}

func (s *accountService) Get(ctx context.Context, id string) (*model.CreditAccount, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	acc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return acc, nil
}
