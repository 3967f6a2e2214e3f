package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL for cached translations
const DefaultTTL = 24 * time.Hour

// CachedTranslation is the value stored per cache key. The provider tag is
// kept so a cache hit reports the provider that originally produced it.
type CachedTranslation struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
}

// TranslationCache is a Redis read-through cache for translation results.
// A nil *TranslationCache is valid and always misses, so callers need no
// configuration checks.
type TranslationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *TranslationCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &TranslationCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached translation for (text, source, target).
// Cache errors are soft: logged and reported as a miss.
func (c *TranslationCache) Get(ctx context.Context, text, source, target string) (CachedTranslation, bool) {
	if c == nil || c.client == nil {
		return CachedTranslation{}, false
	}

	raw, err := c.client.Get(ctx, key(text, source, target)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("translation cache read failed", zap.Error(err))
		}
		return CachedTranslation{}, false
	}

	var cached CachedTranslation
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		c.logger.Warn("translation cache entry corrupt", zap.Error(err))
		return CachedTranslation{}, false
	}

	return cached, true
}

// Set stores a successful provider translation. Errors are soft.
func (c *TranslationCache) Set(ctx context.Context, text, source, target string, value CachedTranslation) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("translation cache marshal failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key(text, source, target), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("translation cache write failed", zap.Error(err))
	}
}

func key(text, source, target string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", source, target, text)))
	return "translation:" + hex.EncodeToString(sum[:])
}
