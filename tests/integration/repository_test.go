//go:build integration

package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingopass/backend/internal/domain/entity"
	domainErrors "github.com/lingopass/backend/internal/domain/errors"
	infrarepo "github.com/lingopass/backend/internal/infrastructure/persistence/repository"
	"github.com/lingopass/backend/tests/testutil"
)

func TestUserRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	pool := testutil.StartPostgres(ctx, t)
	userRepo := infrarepo.NewUserRepository(pool)

	t.Run("UpsertByEmail creates a user with defaults", func(t *testing.T) {
		email := "new_" + uuid.New().String()[:8] + "@example.com"

		user, err := userRepo.UpsertByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, email, user.Email)
		assert.Equal(t, 0, user.Points)
		assert.Equal(t, 1, user.Level)
		assert.False(t, user.IsPremium)
		assert.NotEqual(t, uuid.Nil, user.ID)
	})

	t.Run("UpsertByEmail is idempotent", func(t *testing.T) {
		email := "repeat_" + uuid.New().String()[:8] + "@example.com"

		first, err := userRepo.UpsertByEmail(ctx, email)
		require.NoError(t, err)

		second, err := userRepo.UpsertByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int
		err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Upsert does not reset existing state", func(t *testing.T) {
		email := "keep_" + uuid.New().String()[:8] + "@example.com"

		user, err := userRepo.UpsertByEmail(ctx, email)
		require.NoError(t, err)

		_, err = pool.Exec(ctx, `UPDATE users SET points = 120, level = 4 WHERE id = $1`, user.ID)
		require.NoError(t, err)

		again, err := userRepo.UpsertByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, 120, again.Points)
		assert.Equal(t, 4, again.Level)
	})

	t.Run("GetByID", func(t *testing.T) {
		email := "get_" + uuid.New().String()[:8] + "@example.com"

		created, err := userRepo.UpsertByEmail(ctx, email)
		require.NoError(t, err)

		retrieved, err := userRepo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, retrieved.ID)
		assert.Equal(t, email, retrieved.Email)
	})

	t.Run("GetByID unknown id", func(t *testing.T) {
		_, err := userRepo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)
	})

	t.Run("SetPremium is idempotent", func(t *testing.T) {
		user, err := userRepo.UpsertByEmail(ctx, "premium_"+uuid.New().String()[:8]+"@example.com")
		require.NoError(t, err)

		require.NoError(t, userRepo.SetPremium(ctx, user.ID))
		require.NoError(t, userRepo.SetPremium(ctx, user.ID))

		retrieved, err := userRepo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, retrieved.IsPremium)
	})

	t.Run("SetPremium unknown id", func(t *testing.T) {
		err := userRepo.SetPremium(ctx, uuid.New())
		assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)
	})
}

func TestPurchaseRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	pool := testutil.StartPostgres(ctx, t)
	userRepo := infrarepo.NewUserRepository(pool)
	purchaseRepo := infrarepo.NewPurchaseRepository(pool)

	t.Run("Create and count", func(t *testing.T) {
		user, err := userRepo.UpsertByEmail(ctx, "buyer_"+uuid.New().String()[:8]+"@example.com")
		require.NoError(t, err)

		sessionID := "cs_test_" + uuid.New().String()
		purchase := entity.NewPurchase(&user.ID, entity.ProviderStripe, sessionID, 500, "eur")

		require.NoError(t, purchaseRepo.Create(ctx, purchase))

		count, err := purchaseRepo.CountByProviderID(ctx, entity.ProviderStripe, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("anonymous purchase has no user", func(t *testing.T) {
		sessionID := "cs_test_" + uuid.New().String()
		purchase := entity.NewPurchase(nil, entity.ProviderStripe, sessionID, 500, "eur")

		require.NoError(t, purchaseRepo.Create(ctx, purchase))

		var userID *uuid.UUID
		err := pool.QueryRow(ctx, `SELECT user_id FROM purchases WHERE provider_id = $1`, sessionID).Scan(&userID)
		require.NoError(t, err)
		assert.Nil(t, userID)
	})

	t.Run("duplicate session id is rejected", func(t *testing.T) {
		sessionID := "cs_test_" + uuid.New().String()

		require.NoError(t, purchaseRepo.Create(ctx, entity.NewPurchase(nil, entity.ProviderStripe, sessionID, 500, "eur")))

		err := purchaseRepo.Create(ctx, entity.NewPurchase(nil, entity.ProviderStripe, sessionID, 500, "eur"))
		assert.ErrorIs(t, err, domainErrors.ErrDuplicatePurchase)

		count, err := purchaseRepo.CountByProviderID(ctx, entity.ProviderStripe, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("concurrent duplicates produce one row", func(t *testing.T) {
		sessionID := "cs_test_" + uuid.New().String()

		const workers = 8
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = purchaseRepo.Create(ctx, entity.NewPurchase(nil, entity.ProviderStripe, sessionID, 500, "eur"))
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				assert.True(t, errors.Is(err, domainErrors.ErrDuplicatePurchase), "unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, succeeded)

		count, err := purchaseRepo.CountByProviderID(ctx, entity.ProviderStripe, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
