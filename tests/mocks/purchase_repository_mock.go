package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lingopass/backend/internal/domain/entity"
)

// MockPurchaseRepository is a mock implementation of PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

// NewMockPurchaseRepository creates a new mock purchase repository
func NewMockPurchaseRepository() *MockPurchaseRepository {
	return &MockPurchaseRepository{}
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) CountByProviderID(ctx context.Context, provider entity.PaymentProvider, providerID string) (int, error) {
	args := m.Called(ctx, provider, providerID)
	return args.Int(0), args.Error(1)
}
