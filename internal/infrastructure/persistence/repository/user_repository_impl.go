package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingopass/backend/internal/domain/entity"
	domainErrors "github.com/lingopass/backend/internal/domain/errors"
	"github.com/lingopass/backend/internal/domain/repository"
)

type userRepositoryImpl struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository implementation
func NewUserRepository(p *pgxpool.Pool) repository.UserRepository {
	return &userRepositoryImpl{pool: p}
}

func (r *userRepositoryImpl) UpsertByEmail(ctx context.Context, email string) (*entity.User, error) {
	// The no-op email rewrite turns the conflict into an UPDATE so RETURNING
	// always yields a row, both on insert and on an existing email.
	query := `
		INSERT INTO users (id, email)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, points, level, is_premium, created_at
	`

	var user entity.User
	err := r.pool.QueryRow(ctx, query, uuid.New(), email).Scan(
		&user.ID, &user.Email, &user.Points, &user.Level, &user.IsPremium, &user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT id, email, points, level, is_premium, created_at FROM users WHERE id = $1`

	var user entity.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Points, &user.Level, &user.IsPremium, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, domainErrors.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepositoryImpl) SetPremium(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_premium = TRUE WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to set premium flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domainErrors.ErrUserNotFound)
	}

	return nil
}
