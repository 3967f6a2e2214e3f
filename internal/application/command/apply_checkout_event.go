package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/domain/entity"
	domainErrors "github.com/lingopass/backend/internal/domain/errors"
	"github.com/lingopass/backend/internal/domain/repository"
)

// CompletedCheckout is the reconciliation input extracted from a verified
// checkout.session.completed event.
type CompletedCheckout struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"` // empty for anonymous purchases
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// ApplyCheckoutEventCommand applies a verified completion event to the
// entitlement store and the purchase ledger. It is safe to execute any
// number of times for the same session id: the premium flag write is
// idempotent and the ledger insert is guarded by the storage engine's
// uniqueness constraint, which also covers concurrent redelivery.
type ApplyCheckoutEventCommand struct {
	userRepo     repository.UserRepository
	purchaseRepo repository.PurchaseRepository
	logger       *zap.Logger
}

// NewApplyCheckoutEventCommand creates a new apply command
func NewApplyCheckoutEventCommand(
	userRepo repository.UserRepository,
	purchaseRepo repository.PurchaseRepository,
	logger *zap.Logger,
) *ApplyCheckoutEventCommand {
	return &ApplyCheckoutEventCommand{
		userRepo:     userRepo,
		purchaseRepo: purchaseRepo,
		logger:       logger,
	}
}

// Execute grants the entitlement and records the ledger row. A duplicate
// delivery is a successful no-op. Any other failure is returned to the
// caller, which decides how to acknowledge (the webhook handler acks
// regardless and schedules an out-of-band retry).
func (c *ApplyCheckoutEventCommand) Execute(ctx context.Context, completed CompletedCheckout) error {
	userID := c.resolveUser(ctx, completed)

	if userID != nil {
		if err := c.userRepo.SetPremium(ctx, *userID); err != nil {
			return fmt.Errorf("set premium for session %s: %w", completed.SessionID, err)
		}
	}

	purchase := entity.NewPurchase(userID, entity.ProviderStripe, completed.SessionID, completed.Amount, completed.Currency)
	if err := c.purchaseRepo.Create(ctx, purchase); err != nil {
		if errors.Is(err, domainErrors.ErrDuplicatePurchase) {
			c.logger.Info("duplicate delivery ignored",
				zap.String("session_id", completed.SessionID),
			)
			return nil
		}
		return fmt.Errorf("record purchase for session %s: %w", completed.SessionID, err)
	}

	c.logger.Info("purchase reconciled",
		zap.String("session_id", completed.SessionID),
		zap.Bool("anonymous", userID == nil),
	)
	return nil
}

// resolveUser maps the session metadata to a user reference. A missing or
// malformed id yields an anonymous purchase rather than a failure: the
// payment already happened and must reach the ledger either way.
func (c *ApplyCheckoutEventCommand) resolveUser(ctx context.Context, completed CompletedCheckout) *uuid.UUID {
	if completed.UserID == "" {
		return nil
	}

	id, err := uuid.Parse(completed.UserID)
	if err != nil {
		c.logger.Warn("checkout metadata carries malformed user id, recording as anonymous",
			zap.String("session_id", completed.SessionID),
			zap.String("user_id", completed.UserID),
		)
		return nil
	}

	if _, err := c.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			c.logger.Warn("checkout metadata references unknown user, recording as anonymous",
				zap.String("session_id", completed.SessionID),
				zap.String("user_id", completed.UserID),
			)
			return nil
		}
		// Storage is unhealthy; keep the reference and let SetPremium surface it.
	}

	return &id
}
