package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/application/command"
	"github.com/lingopass/backend/internal/domain/entity"
	domainErrors "github.com/lingopass/backend/internal/domain/errors"
	"github.com/lingopass/backend/tests/mocks"
)

func completedFor(userID string) command.CompletedCheckout {
	return command.CompletedCheckout{
		SessionID: "cs_test_1",
		UserID:    userID,
		Amount:    500,
		Currency:  "eur",
	}
}

func TestApplyCheckoutEvent_GrantsPremiumAndRecordsPurchase(t *testing.T) {
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "erik@example.com", Level: 1}

	userRepo := mocks.NewMockUserRepository()
	purchaseRepo := mocks.NewMockPurchaseRepository()
	userRepo.On("GetByID", mock.Anything, userID).Return(user, nil)
	userRepo.On("SetPremium", mock.Anything, userID).Return(nil)
	purchaseRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Purchase) bool {
		return p.ProviderID == "cs_test_1" && p.UserID != nil && *p.UserID == userID
	})).Return(nil)

	cmd := command.NewApplyCheckoutEventCommand(userRepo, purchaseRepo, zap.NewNop())
	require.NoError(t, cmd.Execute(context.Background(), completedFor(userID.String())))

	userRepo.AssertExpectations(t)
	purchaseRepo.AssertExpectations(t)
}

func TestApplyCheckoutEvent_AnonymousPurchase(t *testing.T) {
	tests := []struct {
		name   string
		userID string
	}{
		{"empty metadata", ""},
		{"malformed user id", "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			purchaseRepo := mocks.NewMockPurchaseRepository()
			purchaseRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Purchase) bool {
				return p.IsAnonymous()
			})).Return(nil)

			cmd := command.NewApplyCheckoutEventCommand(userRepo, purchaseRepo, zap.NewNop())
			require.NoError(t, cmd.Execute(context.Background(), completedFor(tt.userID)))

			userRepo.AssertNotCalled(t, "SetPremium", mock.Anything, mock.Anything)
			purchaseRepo.AssertExpectations(t)
		})
	}
}

func TestApplyCheckoutEvent_UnknownUserRecordedAsAnonymous(t *testing.T) {
	userID := uuid.New()

	userRepo := mocks.NewMockUserRepository()
	purchaseRepo := mocks.NewMockPurchaseRepository()
	userRepo.On("GetByID", mock.Anything, userID).Return(nil, domainErrors.ErrUserNotFound)
	purchaseRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Purchase) bool {
		return p.IsAnonymous()
	})).Return(nil)

	cmd := command.NewApplyCheckoutEventCommand(userRepo, purchaseRepo, zap.NewNop())
	require.NoError(t, cmd.Execute(context.Background(), completedFor(userID.String())))

	userRepo.AssertNotCalled(t, "SetPremium", mock.Anything, mock.Anything)
}

func TestApplyCheckoutEvent_DuplicateDeliveryIsNoOp(t *testing.T) {
	userID := uuid.New()
	user := &entity.User{ID: userID, IsPremium: true}

	userRepo := mocks.NewMockUserRepository()
	purchaseRepo := mocks.NewMockPurchaseRepository()
	userRepo.On("GetByID", mock.Anything, userID).Return(user, nil)
	userRepo.On("SetPremium", mock.Anything, userID).Return(nil)
	purchaseRepo.On("Create", mock.Anything, mock.Anything).Return(domainErrors.ErrDuplicatePurchase)

	cmd := command.NewApplyCheckoutEventCommand(userRepo, purchaseRepo, zap.NewNop())
	err := cmd.Execute(context.Background(), completedFor(userID.String()))

	assert.NoError(t, err, "a duplicate delivery resolves successfully without a second ledger row")
}

func TestApplyCheckoutEvent_StorageFailureSurfaces(t *testing.T) {
	userID := uuid.New()
	user := &entity.User{ID: userID}
	storageErr := errors.New("connection reset")

	t.Run("premium write fails", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		purchaseRepo := mocks.NewMockPurchaseRepository()
		userRepo.On("GetByID", mock.Anything, userID).Return(user, nil)
		userRepo.On("SetPremium", mock.Anything, userID).Return(storageErr)

		cmd := command.NewApplyCheckoutEventCommand(userRepo, purchaseRepo, zap.NewNop())
		err := cmd.Execute(context.Background(), completedFor(userID.String()))

		require.Error(t, err)
		purchaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ledger insert fails", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		purchaseRepo := mocks.NewMockPurchaseRepository()
		userRepo.On("GetByID", mock.Anything, userID).Return(user, nil)
		userRepo.On("SetPremium", mock.Anything, userID).Return(nil)
		purchaseRepo.On("Create", mock.Anything, mock.Anything).Return(storageErr)

		cmd := command.NewApplyCheckoutEventCommand(userRepo, purchaseRepo, zap.NewNop())
		err := cmd.Execute(context.Background(), completedFor(userID.String()))

		require.Error(t, err)
		assert.ErrorIs(t, err, storageErr)
	})
}
