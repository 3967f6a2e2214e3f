package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lingopass/backend/internal/domain/entity"
	domainErrors "github.com/lingopass/backend/internal/domain/errors"
	"github.com/lingopass/backend/internal/domain/repository"
)

// GetProfileQuery reads a user's point-in-time profile.
type GetProfileQuery struct {
	userRepo repository.UserRepository
}

// NewGetProfileQuery creates a new profile query
func NewGetProfileQuery(userRepo repository.UserRepository) *GetProfileQuery {
	return &GetProfileQuery{userRepo: userRepo}
}

// Execute returns the user row, or (nil, nil) when the id is unknown or
// not a valid identifier.
func (q *GetProfileQuery) Execute(ctx context.Context, id string) (*entity.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	user, err := q.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}

	return user, nil
}
