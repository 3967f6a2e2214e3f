package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/lingopass/backend/internal/domain/errors"
)

// DefaultTimeout for HTTP requests
const DefaultTimeout = 15 * time.Second

// CheckoutSession is the subset of the provider's session object this
// service consumes: the id doubles as the idempotency key presented back
// in the completion webhook.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutParams describes the single fixed line item of a session.
type CheckoutParams struct {
	ProductName string
	Currency    string
	UnitAmount  int64
	SuccessURL  string
	CancelURL   string
	UserID      string // stored in session metadata; empty for anonymous
}

// Client is a minimal Stripe API client covering checkout-session creation.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Stripe client
func NewClient(secretKey, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		secretKey: secretKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CreateCheckoutSession creates a hosted payment session for the fixed
// line item described by params.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.UnitAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("metadata[userId]", params.UserID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build checkout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout session request: %w: %w", domainErrors.ErrPaymentProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkout response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
				Type    string `json:"type"`
			} `json:"error"`
		}
		_ = json.Unmarshal(body, &apiErr)
		c.logger.Error("checkout session creation rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("error_type", apiErr.Error.Type),
			zap.String("error_message", apiErr.Error.Message),
		)
		return nil, fmt.Errorf("checkout session returned status %d: %w", resp.StatusCode, domainErrors.ErrPaymentProvider)
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout response: %w", err)
	}

	return &session, nil
}
