package service_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingopass/backend/internal/domain/service"
)

func TestClampLevel(t *testing.T) {
	tests := []struct {
		in       int
		expected int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{10, 10},
		{20, 20},
		{21, 20},
		{99, 20},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("level %d", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.expected, service.ClampLevel(tt.in))
		})
	}
}

func TestTitleForLevel(t *testing.T) {
	assert.Equal(t, "Novice", service.TitleForLevel(1))
	assert.Equal(t, "Grandmaster", service.TitleForLevel(20))
	// Out-of-range lookups clamp first
	assert.Equal(t, "Novice", service.TitleForLevel(0))
	assert.Equal(t, "Grandmaster", service.TitleForLevel(99))
}

func TestCertificateService_Render(t *testing.T) {
	svc := service.NewCertificateService()

	t.Run("filename encodes clamped level", func(t *testing.T) {
		cert, err := svc.Render("Erik", 0)
		require.NoError(t, err)
		assert.Equal(t, "certificate_level_1.pdf", cert.Filename)
		assert.Equal(t, 1, cert.Level)

		cert, err = svc.Render("Erik", 99)
		require.NoError(t, err)
		assert.Equal(t, "certificate_level_20.pdf", cert.Filename)
		assert.Equal(t, 20, cert.Level)
	})

	t.Run("output is a PDF document", func(t *testing.T) {
		cert, err := svc.Render("Erik Svensson", 7)
		require.NoError(t, err)
		require.NotEmpty(t, cert.Content)
		assert.Equal(t, "%PDF", string(cert.Content[:4]))
		assert.Equal(t, "Conversationalist", cert.Title)
	})
}
