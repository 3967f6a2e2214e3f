package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/application/command"
)

// ReconcileJobHandler processes queued purchase reconciliations.
type ReconcileJobHandler struct {
	applyCmd *command.ApplyCheckoutEventCommand
	logger   *zap.Logger
}

// NewReconcileJobHandler creates a new reconcile job handler
func NewReconcileJobHandler(applyCmd *command.ApplyCheckoutEventCommand, logger *zap.Logger) *ReconcileJobHandler {
	return &ReconcileJobHandler{
		applyCmd: applyCmd,
		logger:   logger,
	}
}

// ProcessTask re-runs the apply. Duplicate sessions resolve to a no-op
// inside the command, so a task raced by a later successful delivery is
// harmless. A returned error makes asynq retry with backoff.
func (h *ReconcileJobHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var completed command.CompletedCheckout
	if err := json.Unmarshal(t.Payload(), &completed); err != nil {
		return fmt.Errorf("failed to unmarshal reconcile payload: %w", asynq.SkipRetry)
	}

	if err := h.applyCmd.Execute(ctx, completed); err != nil {
		h.logger.Warn("reconcile attempt failed, will retry",
			zap.String("session_id", completed.SessionID),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("queued purchase reconciled",
		zap.String("session_id", completed.SessionID),
	)
	return nil
}
