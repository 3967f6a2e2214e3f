package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lingopass/backend/internal/domain/service"
	"github.com/lingopass/backend/internal/infrastructure/logging"
	"github.com/lingopass/backend/internal/interfaces/http/response"
)

// CertificateRenderer produces a PDF certificate for a recipient and level.
type CertificateRenderer interface {
	Render(name string, level int) (*service.Certificate, error)
}

// CertificateHandler streams level certificates
type CertificateHandler struct {
	certificateSvc CertificateRenderer
}

// NewCertificateHandler creates a new certificate handler
func NewCertificateHandler(certificateSvc CertificateRenderer) *CertificateHandler {
	return &CertificateHandler{certificateSvc: certificateSvc}
}

// Download handles GET /api/certificate/:name/:level
func (h *CertificateHandler) Download(c *gin.Context) {
	// Route params come out of the matched URL path, which net/http has
	// already percent-decoded; decoding again would mangle names that
	// contain literal escape sequences.
	name := c.Param("name")

	// Non-numeric levels clamp up from zero
	level, _ := strconv.Atoi(c.Param("level"))

	cert, err := h.certificateSvc.Render(name, level)
	if err != nil {
		logging.GetLogger(c).Error("certificate rendering failed",
			zap.String("name", name),
			zap.Int("level", level),
			zap.Error(err),
		)
		response.InternalError(c, "Failed to render certificate")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cert.Filename))
	c.Data(http.StatusOK, "application/pdf", cert.Content)
}
