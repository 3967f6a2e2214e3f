package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/application/command"
	"github.com/lingopass/backend/internal/infrastructure/external/stripe"
	"github.com/lingopass/backend/internal/infrastructure/logging"
	"github.com/lingopass/backend/internal/interfaces/http/response"
	"github.com/lingopass/backend/internal/worker/tasks"
)

// TaskEnqueuer is the subset of asynq.Client the handler needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// WebhookHandler receives payment provider notifications. Verification
// strictly precedes any storage mutation; every verified event ends in an
// acknowledgement regardless of storage outcome, because the provider has
// durably notified us and would otherwise retry forever.
type WebhookHandler struct {
	webhookSecret string
	applyCmd      *command.ApplyCheckoutEventCommand
	enqueuer      TaskEnqueuer // nil when no Redis is configured
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookSecret string, applyCmd *command.ApplyCheckoutEventCommand, enqueuer TaskEnqueuer) *WebhookHandler {
	return &WebhookHandler{
		webhookSecret: webhookSecret,
		applyCmd:      applyCmd,
		enqueuer:      enqueuer,
	}
}

// HandleStripe handles POST /webhook
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	logger := logging.GetLogger(c)

	// The raw body bytes are the signed payload; any re-serialization
	// before verification would invalidate the signature.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "Webhook Error: failed to read body")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := stripe.VerifySignature(body, signature, h.webhookSecret, stripe.DefaultTolerance); err != nil {
		logger.Warn("webhook signature rejected", zap.Error(err))
		response.BadRequest(c, "Webhook Error: "+err.Error())
		return
	}

	event, err := stripe.ParseEvent(body)
	if err != nil {
		logger.Warn("verified webhook body unparseable", zap.Error(err))
		response.BadRequest(c, "Webhook Error: invalid event body")
		return
	}

	if event.Type != stripe.EventCheckoutCompleted {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	completed := command.CompletedCheckout{
		SessionID: event.Data.Object.ID,
		UserID:    event.Data.Object.UserID(),
		Amount:    event.Data.Object.AmountTotal,
		Currency:  event.Data.Object.Currency,
	}

	if err := h.applyCmd.Execute(c.Request.Context(), completed); err != nil {
		// The provider is acknowledged anyway: it has done its part and
		// retrying the delivery would not fix our storage. The failure is
		// logged with the session id and queued for out-of-band retry.
		logger.Error("purchase apply failed, acknowledging and queueing reconcile",
			zap.String("session_id", completed.SessionID),
			zap.Error(err),
		)
		h.enqueueReconcile(logger, completed)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *WebhookHandler) enqueueReconcile(logger *zap.Logger, completed command.CompletedCheckout) {
	if h.enqueuer == nil {
		return
	}

	task, err := tasks.NewReconcilePurchaseTask(completed)
	if err != nil {
		logger.Error("failed to build reconcile task", zap.Error(err))
		return
	}
	if _, err := h.enqueuer.Enqueue(task); err != nil {
		logger.Error("failed to enqueue reconcile task",
			zap.String("session_id", completed.SessionID),
			zap.Error(err),
		)
	}
}
