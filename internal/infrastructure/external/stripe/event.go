package stripe

import (
	"encoding/json"
	"fmt"
)

// EventCheckoutCompleted is the only event type that drives entitlement
// mutation; every other type is acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

// Event is the provider's webhook envelope, reduced to the fields this
// service reads.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object SessionObject `json:"object"`
	} `json:"data"`
}

// SessionObject is the checkout session embedded in a completion event.
type SessionObject struct {
	ID          string            `json:"id"`
	AmountTotal int64             `json:"amount_total"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata"`
}

// UserID returns the internal user id tagged onto the session at creation,
// or empty for anonymous purchases.
func (s SessionObject) UserID() string {
	return s.Metadata["userId"]
}

// ParseEvent decodes a verified webhook body into an Event.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook event: %w", err)
	}
	return &event, nil
}
