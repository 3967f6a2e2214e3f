package command

import (
	"context"
	"fmt"

	domainErrors "github.com/lingopass/backend/internal/domain/errors"
	"github.com/lingopass/backend/internal/infrastructure/external/stripe"
)

// Fixed premium product sold through checkout.
const (
	PremiumProductName = "Lingopass Premium"
	PremiumCurrency    = "eur"
	PremiumUnitAmount  = 500 // minor currency units
)

// CreateCheckoutCommand creates provider-hosted payment sessions for the
// fixed premium product.
type CreateCheckoutCommand struct {
	client        *stripe.Client // nil when payment is not configured
	publicBaseURL string
}

// NewCreateCheckoutCommand creates a new checkout command. Pass a nil
// client when no secret key is configured; Execute then fails with a typed
// error before any network call.
func NewCreateCheckoutCommand(client *stripe.Client, publicBaseURL string) *CreateCheckoutCommand {
	return &CreateCheckoutCommand{
		client:        client,
		publicBaseURL: publicBaseURL,
	}
}

// Execute creates a session tagged with userID (may be empty). The session
// id returned is the key the completion webhook presents back later.
func (c *CreateCheckoutCommand) Execute(ctx context.Context, userID string) (*stripe.CheckoutSession, error) {
	if c.client == nil {
		return nil, domainErrors.ErrPaymentNotConfigured
	}

	session, err := c.client.CreateCheckoutSession(ctx, stripe.CheckoutParams{
		ProductName: PremiumProductName,
		Currency:    PremiumCurrency,
		UnitAmount:  PremiumUnitAmount,
		SuccessURL:  fmt.Sprintf("%s/premium/success?session_id={CHECKOUT_SESSION_ID}", c.publicBaseURL),
		CancelURL:   fmt.Sprintf("%s/premium/cancel", c.publicBaseURL),
		UserID:      userID,
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session for user %q: %w", userID, err)
	}

	return session, nil
}
