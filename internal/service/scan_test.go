package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/madhubv/doc-scanner/internal/ledger"
	ledgerMocks "github.com/madhubv/doc-scanner/internal/ledger/mocks"
	"github.com/madhubv/doc-scanner/internal/model"
	"github.com/madhubv/doc-scanner/internal/repository"
	"github.com/madhubv/doc-scanner/internal/repository/memory"
	repoMocks "github.com/madhubv/doc-scanner/internal/repository/mocks"
	"github.com/madhubv/doc-scanner/internal/similarity"
	"github.com/madhubv/doc-scanner/internal/storage"
	storeMocks "github.com/madhubv/doc-scanner/internal/storage/mocks"
)

func TestScanService_Scan(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     string
		text       string
		setupMocks func(mDocs *repoMocks.MockDocumentRepository, mScans *repoMocks.MockScanRepository, mLedger *ledgerMocks.MockCreditLedger, mArchive *storeMocks.MockArchive)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:   "happy path",
			userID: "u1",
			text:   "hello world",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mScans *repoMocks.MockScanRepository, mLedger *ledgerMocks.MockCreditLedger, mArchive *storeMocks.MockArchive) {
				mLedger.On("TryDebit", ctx, "u1", 1).Return(4, true, nil)
				mDocs.On("All", ctx).Return([]model.Document{}, nil)
				mArchive.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				mDocs.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.Content == "hello world" && doc.Title == "Document 1"
				})).Return(&model.Document{ID: "gen-id", Title: "Document 1", Content: "hello world"}, nil)
				mScans.On("Create", ctx, mock.MatchedBy(func(rec *model.ScanRecord) bool {
					return rec.UserID == "u1" && rec.DocumentID == "gen-id" && rec.MatchCount == 0
				})).Return(&model.ScanRecord{ID: "scan-id"}, nil)
			},
		},
		{
			name:    "validation - blank text before any state change",
			userID:  "u1",
			text:    "   \t\n ",
			wantErr: ErrInvalidInput,
		},
		{
			name:    "validation - missing user id",
			userID:  "",
			text:    "hello",
			wantErr: ErrInvalidInput,
		},
		{
			name:   "insufficient credits is terminal",
			userID: "u1",
			text:   "hello",
			setupMocks: func(_ *repoMocks.MockDocumentRepository, _ *repoMocks.MockScanRepository, mLedger *ledgerMocks.MockCreditLedger, _ *storeMocks.MockArchive) {
				mLedger.On("TryDebit", ctx, "u1", 1).Return(0, false, nil)
			},
			wantErr: ErrInsufficientCredits,
		},
		{
			name:   "corpus read failure refunds the debit",
			userID: "u1",
			text:   "hello",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, _ *repoMocks.MockScanRepository, mLedger *ledgerMocks.MockCreditLedger, _ *storeMocks.MockArchive) {
				mLedger.On("TryDebit", ctx, "u1", 1).Return(4, true, nil)
				mDocs.On("All", ctx).Return(nil, errors.New("db down"))
				mLedger.On("Credit", ctx, "u1", 1).Return(5, nil)
			},
			wantErr: ErrStorageFailure,
		},
		{
			name:   "archive failure refunds the debit",
			userID: "u1",
			text:   "hello",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, _ *repoMocks.MockScanRepository, mLedger *ledgerMocks.MockCreditLedger, mArchive *storeMocks.MockArchive) {
				mLedger.On("TryDebit", ctx, "u1", 1).Return(4, true, nil)
				mDocs.On("All", ctx).Return([]model.Document{}, nil)
				mArchive.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("minio down"))
				mLedger.On("Credit", ctx, "u1", 1).Return(5, nil)
			},
			wantErr: ErrStorageFailure,
		},
		{
			name:   "document append failure rolls back archive and refunds",
			userID: "u1",
			text:   "hello",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, _ *repoMocks.MockScanRepository, mLedger *ledgerMocks.MockCreditLedger, mArchive *storeMocks.MockArchive) {
				mLedger.On("TryDebit", ctx, "u1", 1).Return(4, true, nil)
				mDocs.On("All", ctx).Return([]model.Document{}, nil)
				mArchive.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				mDocs.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))
				mArchive.On("Delete", ctx, mock.Anything).Return(nil)
				mLedger.On("Credit", ctx, "u1", 1).Return(5, nil)
			},
			wantErr: ErrStorageFailure,
		},
		{
			name:   "scan record failure refunds the debit",
			userID: "u1",
			text:   "hello",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mScans *repoMocks.MockScanRepository, mLedger *ledgerMocks.MockCreditLedger, mArchive *storeMocks.MockArchive) {
				mLedger.On("TryDebit", ctx, "u1", 1).Return(4, true, nil)
				mDocs.On("All", ctx).Return([]model.Document{}, nil)
				mArchive.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				mDocs.On("Create", ctx, mock.Anything).Return(&model.Document{ID: "gen-id"}, nil)
				mScans.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))
				mLedger.On("Credit", ctx, "u1", 1).Return(5, nil)
			},
			wantErr: ErrStorageFailure,
		},
		{
			name:   "failed compensating credit is reported alongside the cause",
			userID: "u1",
			text:   "hello",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, _ *repoMocks.MockScanRepository, mLedger *ledgerMocks.MockCreditLedger, _ *storeMocks.MockArchive) {
				mLedger.On("TryDebit", ctx, "u1", 1).Return(4, true, nil)
				mDocs.On("All", ctx).Return(nil, errors.New("db down"))
				mLedger.On("Credit", ctx, "u1", 1).Return(0, errors.New("refund failed"))
			},
			wantErrMsg: "compensating credit failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mDocs := new(repoMocks.MockDocumentRepository)
			mScans := new(repoMocks.MockScanRepository)
			mLedger := new(ledgerMocks.MockCreditLedger)
			mArchive := new(storeMocks.MockArchive)

			if tt.setupMocks != nil {
				tt.setupMocks(mDocs, mScans, mLedger, mArchive)
			}

			svc := NewScanService(mDocs, mScans, mLedger, mArchive, similarity.DefaultThreshold, similarity.DefaultTopK)
			res, err := svc.Scan(ctx, tt.userID, "", tt.text)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, res)
				assert.Equal(t, 4, res.NewBalance)
				assert.Empty(t, res.Matches)
			}

			mDocs.AssertExpectations(t)
			mScans.AssertExpectations(t)
			mLedger.AssertExpectations(t)
			mArchive.AssertExpectations(t)
		})
	}
}

// scanStack wires the scan pipeline onto in-memory backends.
type scanStack struct {
	svc      ScanService
	docs     *memory.DocumentMemory
	scans    *memory.ScanMemory
	accounts *memory.AccountMemory
	archive  *storage.MemoryArchive
	ledger   *ledger.Ledger
}

func newScanStack(t *testing.T, userID string, credits int) *scanStack {
	t.Helper()

	st := &scanStack{
		docs:     memory.NewDocumentMemory(),
		scans:    memory.NewScanMemory(),
		accounts: memory.NewAccountMemory(),
		archive:  storage.NewMemoryArchive(),
	}
	_, err := st.accounts.Create(context.Background(), &model.CreditAccount{
		ID:        userID,
		Username:  "tester",
		Credits:   credits,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	st.ledger = ledger.New(st.accounts)
	st.svc = NewScanService(st.docs, st.scans, st.ledger, st.archive, similarity.DefaultThreshold, similarity.DefaultTopK)
	return st
}

func (st *scanStack) seedDocument(t *testing.T, id, content string) {
	t.Helper()
	_, err := st.docs.Create(context.Background(), &model.Document{
		ID:        id,
		Title:     id,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestScanService_EndToEnd(t *testing.T) {
	ctx := context.Background()

	t.Run("first scan of an empty corpus", func(t *testing.T) {
		st := newScanStack(t, "u1", 1)

		res, err := st.svc.Scan(ctx, "u1", "", "hello world")

		require.NoError(t, err)
		assert.Empty(t, res.Matches)
		assert.Equal(t, 0, res.NewBalance)
		assert.Equal(t, "Document 1", res.Document.Title)

		corpus, err := st.docs.All(ctx)
		require.NoError(t, err)
		assert.Len(t, corpus, 1)

		history, err := st.svc.History(ctx, "u1", 10, 0)
		require.NoError(t, err)
		require.Len(t, history.Items, 1)
		assert.Equal(t, 0, history.Items[0].MatchCount)
		assert.Equal(t, res.Document.ID, history.Items[0].DocumentID)

		assert.Equal(t, 1, st.archive.Len())
	})

	t.Run("similar document is matched", func(t *testing.T) {
		st := newScanStack(t, "u1", 2)
		st.seedDocument(t, "doc-a", "the cat sat on the mat")

		res, err := st.svc.Scan(ctx, "u1", "", "the cat sat on the rug")

		require.NoError(t, err)
		require.Len(t, res.Matches, 1)
		assert.Equal(t, "doc-a", res.Matches[0].DocumentID)
		assert.InDelta(t, 4.0/6.0, res.Matches[0].Similarity, 1e-9)

		history, err := st.svc.History(ctx, "u1", 10, 0)
		require.NoError(t, err)
		require.Len(t, history.Items, 1)
		assert.Equal(t, 1, history.Items[0].MatchCount)
	})

	t.Run("zero balance leaves all state untouched", func(t *testing.T) {
		st := newScanStack(t, "u1", 0)

		res, err := st.svc.Scan(ctx, "u1", "", "some perfectly fine text")

		assert.ErrorIs(t, err, ErrInsufficientCredits)
		assert.Nil(t, res)

		corpus, err := st.docs.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, corpus)

		history, err := st.svc.History(ctx, "u1", 10, 0)
		require.NoError(t, err)
		assert.Empty(t, history.Items)

		acc, err := st.accounts.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 0, acc.Credits)
	})

	t.Run("equal scores keep corpus insertion order", func(t *testing.T) {
		st := newScanStack(t, "u1", 1)
		// Both score exactly 0.5 against "one two".
		st.seedDocument(t, "doc-x", "one two three four")
		st.seedDocument(t, "doc-y", "one two five six")

		res, err := st.svc.Scan(ctx, "u1", "", "one two")

		require.NoError(t, err)
		require.Len(t, res.Matches, 2)
		assert.Equal(t, "doc-x", res.Matches[0].DocumentID)
		assert.Equal(t, "doc-y", res.Matches[1].DocumentID)
		assert.Equal(t, res.Matches[0].Similarity, res.Matches[1].Similarity)
	})

	t.Run("default titles number the corpus", func(t *testing.T) {
		st := newScanStack(t, "u1", 3)

		first, err := st.svc.Scan(ctx, "u1", "", "alpha beta gamma")
		require.NoError(t, err)
		second, err := st.svc.Scan(ctx, "u1", "custom title", "delta epsilon zeta")
		require.NoError(t, err)
		third, err := st.svc.Scan(ctx, "u1", "", "eta theta iota")
		require.NoError(t, err)

		assert.Equal(t, "Document 1", first.Document.Title)
		assert.Equal(t, "custom title", second.Document.Title)
		assert.Equal(t, "Document 3", third.Document.Title)
	})
}

func TestScanService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user id", func(t *testing.T) {
		svc := NewScanService(nil, nil, nil, nil, similarity.DefaultThreshold, similarity.DefaultTopK)

		_, err := svc.History(ctx, "", 10, 0)

		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("pagination boundary - zero limit uses default", func(t *testing.T) {
		mScans := new(repoMocks.MockScanRepository)
		mScans.On("ListByUser", ctx, "u1", repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.ScanRecord]{Items: []model.ScanRecord{}, Total: 0}, nil)

		svc := NewScanService(nil, mScans, nil, nil, similarity.DefaultThreshold, similarity.DefaultTopK)
		res, err := svc.History(ctx, "u1", 0, -5)

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		mScans.AssertExpectations(t)
	})
}
