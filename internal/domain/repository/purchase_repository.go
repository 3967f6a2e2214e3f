package repository

import (
	"context"

	"github.com/lingopass/backend/internal/domain/entity"
)

// PurchaseRepository defines the interface for the purchase ledger.
type PurchaseRepository interface {
	// Create appends a ledger row. Returns errors.ErrDuplicatePurchase when a
	// row with the same (provider, provider_id) already exists; the uniqueness
	// guarantee is the storage engine's, so concurrent duplicates are safe.
	Create(ctx context.Context, purchase *entity.Purchase) error
	CountByProviderID(ctx context.Context, provider entity.PaymentProvider, providerID string) (int, error)
}
