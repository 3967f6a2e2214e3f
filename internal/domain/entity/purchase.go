package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentProvider string

const (
	ProviderStripe PaymentProvider = "stripe"
)

// Purchase is one row of the append-only purchase ledger. The pair
// (Provider, ProviderID) is the idempotency key: the ledger never holds
// two rows for the same provider session.
type Purchase struct {
	ID         uuid.UUID
	UserID     *uuid.UUID // nil for anonymous purchases
	Provider   PaymentProvider
	ProviderID string
	Amount     int64 // minor currency units
	Currency   string
	CreatedAt  time.Time
}

// NewPurchase creates a new purchase ledger entry
func NewPurchase(userID *uuid.UUID, provider PaymentProvider, providerID string, amount int64, currency string) *Purchase {
	return &Purchase{
		ID:         uuid.New(),
		UserID:     userID,
		Provider:   provider,
		ProviderID: providerID,
		Amount:     amount,
		Currency:   currency,
		CreatedAt:  time.Now(),
	}
}

// IsAnonymous returns true if the purchase is not linked to a user
func (p *Purchase) IsAnonymous() bool {
	return p.UserID == nil
}
