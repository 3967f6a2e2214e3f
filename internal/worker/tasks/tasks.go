// Package tasks defines the background task types processed by cmd/worker.
package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lingopass/backend/internal/application/command"
)

// TypeReconcilePurchase re-applies a verified checkout completion whose
// storage write failed during webhook handling. The provider was already
// acknowledged at that point, so this queue is the only retry path.
const TypeReconcilePurchase = "purchase:reconcile"

// NewReconcilePurchaseTask creates a reconcile task for a completed checkout
func NewReconcilePurchaseTask(completed command.CompletedCheckout) (*asynq.Task, error) {
	payload, err := json.Marshal(completed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reconcile payload: %w", err)
	}
	return asynq.NewTask(TypeReconcilePurchase, payload,
		asynq.MaxRetry(10),
		asynq.Timeout(30*time.Second),
	), nil
}
