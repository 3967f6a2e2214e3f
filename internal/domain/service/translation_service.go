package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domainErrors "github.com/lingopass/backend/internal/domain/errors"
	"github.com/lingopass/backend/internal/infrastructure/cache"
)

// FallbackProvider is the provider tag used when no upstream produced a
// translation and the original text is returned wrapped in a marker.
const FallbackProvider = "none"

// TranslationProvider wraps one upstream translation API behind a uniform
// call shape. Implementations return the translated text or an error; any
// error is a soft failure from the coordinator's point of view.
type TranslationProvider interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Translation is the normalized result of a translation attempt.
type Translation struct {
	Text     string `json:"translatedText"`
	Provider string `json:"provider"`
}

// TranslationService orchestrates provider attempts in priority order and
// degrades to a deterministic fallback when none succeed.
type TranslationService struct {
	providers []TranslationProvider
	cache     *cache.TranslationCache
	logger    *zap.Logger
}

// NewTranslationService creates a new translation service. Providers are
// tried in slice order; cache may be nil.
func NewTranslationService(providers []TranslationProvider, translationCache *cache.TranslationCache, logger *zap.Logger) *TranslationService {
	return &TranslationService{
		providers: providers,
		cache:     translationCache,
		logger:    logger,
	}
}

// Translate returns the first successful provider result, or the fallback
// wrapping of the original text when no provider is configured or every
// configured provider soft-fails.
func (s *TranslationService) Translate(ctx context.Context, text, source, target string) (*Translation, error) {
	if err := validateRequest(text, source, target); err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(ctx, text, source, target); ok {
		return &Translation{Text: cached.Text, Provider: cached.Provider}, nil
	}

	for _, provider := range s.providers {
		translated, err := provider.Translate(ctx, text, source, target)
		if err != nil {
			s.logger.Warn("translation provider failed, falling through",
				zap.String("provider", provider.Name()),
				zap.Error(err),
			)
			continue
		}
		if strings.TrimSpace(translated) == "" {
			s.logger.Warn("translation provider returned empty payload, falling through",
				zap.String("provider", provider.Name()),
			)
			continue
		}

		result := &Translation{Text: translated, Provider: provider.Name()}
		s.cache.Set(ctx, text, source, target, cache.CachedTranslation{
			Text:     result.Text,
			Provider: result.Provider,
		})
		return result, nil
	}

	if len(s.providers) == 0 {
		s.logger.Info("no translation provider configured, returning fallback")
	}

	return &Translation{
		Text:     fmt.Sprintf("[untranslated] %s", text),
		Provider: FallbackProvider,
	}, nil
}

func validateRequest(text, source, target string) error {
	switch {
	case strings.TrimSpace(text) == "":
		return domainErrors.NewValidationError("q", "text is required")
	case strings.TrimSpace(source) == "":
		return domainErrors.NewValidationError("source", "source language is required")
	case strings.TrimSpace(target) == "":
		return domainErrors.NewValidationError("target", "target language is required")
	}
	return nil
}
