package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/application/dto"
	domainErrors "github.com/lingopass/backend/internal/domain/errors"
	"github.com/lingopass/backend/internal/domain/service"
	"github.com/lingopass/backend/internal/infrastructure/logging"
	"github.com/lingopass/backend/internal/interfaces/http/response"
)

// TranslateHandler handles the translation endpoint
type TranslateHandler struct {
	translationSvc *service.TranslationService
}

// NewTranslateHandler creates a new translate handler
func NewTranslateHandler(translationSvc *service.TranslationService) *TranslateHandler {
	return &TranslateHandler{translationSvc: translationSvc}
}

// Translate handles POST /api/translate
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req dto.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "q, source and target are required")
		return
	}

	result, err := h.translationSvc.Translate(c.Request.Context(), req.Q, req.Source, req.Target)
	if err != nil {
		if domainErrors.IsValidation(err) {
			response.BadRequest(c, err.Error())
			return
		}
		logging.GetLogger(c).Error("translation failed", zap.Error(err))
		response.InternalError(c, "Translation failed")
		return
	}

	c.JSON(http.StatusOK, dto.TranslateResponse{
		TranslatedText: result.Text,
		Provider:       result.Provider,
	})
}
