package command

import (
	"context"
	"fmt"

	"github.com/lingopass/backend/internal/domain/entity"
	"github.com/lingopass/backend/internal/domain/repository"
)

// RegisterCommand handles idempotent user registration keyed by email.
type RegisterCommand struct {
	userRepo repository.UserRepository
}

// NewRegisterCommand creates a new register command
func NewRegisterCommand(userRepo repository.UserRepository) *RegisterCommand {
	return &RegisterCommand{userRepo: userRepo}
}

// Execute upserts the user. Re-registering an existing email returns the
// existing row unchanged.
func (c *RegisterCommand) Execute(ctx context.Context, email string) (*entity.User, error) {
	user, err := c.userRepo.UpsertByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", email, err)
	}
	return user, nil
}
