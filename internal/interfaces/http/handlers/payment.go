package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/application/command"
	"github.com/lingopass/backend/internal/application/dto"
	domainErrors "github.com/lingopass/backend/internal/domain/errors"
	"github.com/lingopass/backend/internal/infrastructure/logging"
	"github.com/lingopass/backend/internal/interfaces/http/response"
)

// PaymentHandler handles checkout session creation
type PaymentHandler struct {
	checkoutCmd *command.CreateCheckoutCommand
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(checkoutCmd *command.CreateCheckoutCommand) *PaymentHandler {
	return &PaymentHandler{checkoutCmd: checkoutCmd}
}

// CreateCheckoutSession handles POST /api/create-checkout-session
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req dto.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "invalid request body")
		return
	}

	session, err := h.checkoutCmd.Execute(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPaymentNotConfigured) {
			response.InternalError(c, "Payment is not configured")
			return
		}
		logging.GetLogger(c).Error("checkout session creation failed",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
		response.InternalError(c, "Failed to create checkout session")
		return
	}

	c.JSON(http.StatusOK, dto.CreateCheckoutSessionResponse{
		ID:  session.ID,
		URL: session.URL,
	})
}
