package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingopass/backend/internal/domain/service"
	"github.com/lingopass/backend/internal/interfaces/http/handlers"
)

func certificateRouter() *gin.Engine {
	router := gin.New()
	router.GET("/api/certificate/:name/:level", handlers.NewCertificateHandler(service.NewCertificateService()).Download)
	return router
}

func TestCertificate_Download(t *testing.T) {
	router := certificateRouter()

	tests := []struct {
		name             string
		path             string
		expectedFilename string
	}{
		{"level clamped up", "/api/certificate/Erik/0", "certificate_level_1.pdf"},
		{"level clamped down", "/api/certificate/Erik/99", "certificate_level_20.pdf"},
		{"level in range", "/api/certificate/Erik/7", "certificate_level_7.pdf"},
		{"non-numeric level", "/api/certificate/Erik/abc", "certificate_level_1.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), tt.expectedFilename)
			assert.Equal(t, "%PDF", w.Body.String()[:4])
		})
	}
}

// capturingRenderer records the recipient name the handler passes down.
type capturingRenderer struct {
	name string
}

func (r *capturingRenderer) Render(name string, level int) (*service.Certificate, error) {
	r.name = name
	return service.NewCertificateService().Render(name, level)
}

func TestCertificate_NameDecodedExactlyOnce(t *testing.T) {
	renderer := &capturingRenderer{}
	router := gin.New()
	router.GET("/api/certificate/:name/:level", handlers.NewCertificateHandler(renderer).Download)

	tests := []struct {
		name         string
		path         string
		expectedName string
	}{
		{"escaped space", "/api/certificate/Erik%20Svensson/5", "Erik Svensson"},
		{"literal escape sequence survives", "/api/certificate/Erik%2520Svensson/5", "Erik%20Svensson"},
		{"literal percent", "/api/certificate/Top%2010%25/5", "Top 10%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectedName, renderer.name)
			assert.Contains(t, w.Header().Get("Content-Disposition"), "certificate_level_5.pdf")
		})
	}
}
