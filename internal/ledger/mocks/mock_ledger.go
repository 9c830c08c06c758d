package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockCreditLedger struct {
	mock.Mock
}

func (m *MockCreditLedger) TryDebit(ctx context.Context, userID string, amount int) (int, bool, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockCreditLedger) Credit(ctx context.Context, userID string, amount int) (int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Error(1)
}
