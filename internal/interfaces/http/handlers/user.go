package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/application/command"
	"github.com/lingopass/backend/internal/application/dto"
	"github.com/lingopass/backend/internal/application/query"
	"github.com/lingopass/backend/internal/infrastructure/logging"
	"github.com/lingopass/backend/internal/interfaces/http/response"
)

// UserHandler handles registration and profile reads
type UserHandler struct {
	registerCmd  *command.RegisterCommand
	profileQuery *query.GetProfileQuery
}

// NewUserHandler creates a new user handler
func NewUserHandler(registerCmd *command.RegisterCommand, profileQuery *query.GetProfileQuery) *UserHandler {
	return &UserHandler{
		registerCmd:  registerCmd,
		profileQuery: profileQuery,
	}
}

// Register handles POST /api/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email is required")
		return
	}

	user, err := h.registerCmd.Execute(c.Request.Context(), req.Email)
	if err != nil {
		logging.GetLogger(c).Error("registration failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		response.InternalError(c, "Registration failed")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Me handles GET /api/me/:id
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.profileQuery.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		logging.GetLogger(c).Error("profile read failed",
			zap.String("user_id", c.Param("id")),
			zap.Error(err),
		)
		response.InternalError(c, "Failed to load profile")
		return
	}

	if user == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, user)
}
