package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Points    int       `json:"points"`
	Level     int       `json:"level"`
	IsPremium bool      `json:"isPremium"`
	CreatedAt time.Time `json:"-"`
}

// NewUser creates a new user entity with starting progression values
func NewUser(email string) *User {
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Points:    0,
		Level:     1,
		IsPremium: false,
		CreatedAt: time.Now(),
	}
}

// HasEmail returns true if the user has an email address
func (u *User) HasEmail() bool {
	return u.Email != ""
}

// GrantPremium marks the user as premium. Granting twice is a no-op.
func (u *User) GrantPremium() {
	u.IsPremium = true
}
