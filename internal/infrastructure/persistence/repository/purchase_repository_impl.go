package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingopass/backend/internal/domain/entity"
	domainErrors "github.com/lingopass/backend/internal/domain/errors"
	"github.com/lingopass/backend/internal/domain/repository"
)

type purchaseRepositoryImpl struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository creates a new purchase repository implementation
func NewPurchaseRepository(p *pgxpool.Pool) repository.PurchaseRepository {
	return &purchaseRepositoryImpl{pool: p}
}

func (r *purchaseRepositoryImpl) Create(ctx context.Context, purchase *entity.Purchase) error {
	// The unique index on (provider, provider_id) is the idempotency guard.
	// ON CONFLICT DO NOTHING keeps concurrent duplicate deliveries from
	// erroring; zero affected rows means another delivery won the race.
	query := `
		INSERT INTO purchases (id, user_id, provider, provider_id, amount, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (provider, provider_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		purchase.ID, purchase.UserID, string(purchase.Provider), purchase.ProviderID,
		purchase.Amount, purchase.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("purchase %s/%s: %w", purchase.Provider, purchase.ProviderID, domainErrors.ErrDuplicatePurchase)
	}

	return nil
}

func (r *purchaseRepositoryImpl) CountByProviderID(ctx context.Context, provider entity.PaymentProvider, providerID string) (int, error) {
	query := `SELECT COUNT(*) FROM purchases WHERE provider = $1 AND provider_id = $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, string(provider), providerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	return count, nil
}
