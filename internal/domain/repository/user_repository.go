package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lingopass/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// UpsertByEmail inserts a user or returns the existing row for the email.
	UpsertByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// SetPremium flips the premium flag on. Idempotent.
	SetPremium(ctx context.Context, id uuid.UUID) error
}
