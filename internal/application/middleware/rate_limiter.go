package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig defines rate limiting parameters
type RateLimitConfig struct {
	Rate  int // requests per second
	Burst int // maximum burst size
}

// TranslateConfig limits the translation endpoint, which fans out to paid
// upstream providers.
var TranslateConfig = RateLimitConfig{Rate: 5, Burst: 10}

// RateLimiter manages rate limiting using Redis
type RateLimiter struct {
	limiter  *redis_rate.Limiter
	logger   *zap.Logger
	failOpen bool // allow requests when Redis is unavailable
	prefix   string
}

// NewRateLimiter creates a new rate limiter. Pass a nil client to disable
// limiting entirely (no Redis configured).
func NewRateLimiter(redisClient *redis.Client, failOpen bool, logger *zap.Logger) *RateLimiter {
	var limiter *redis_rate.Limiter
	if redisClient != nil {
		limiter = redis_rate.NewLimiter(redisClient)
	}
	return &RateLimiter{
		limiter:  limiter,
		logger:   logger,
		failOpen: failOpen,
		prefix:   "ratelimit:",
	}
}

// ByIP keys the limit on the client IP
func ByIP(c *gin.Context) string {
	return c.ClientIP()
}

// Middleware returns a Gin middleware enforcing the given limit
func (r *RateLimiter) Middleware(keyFunc func(*gin.Context) string, config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.limiter == nil {
			c.Next()
			return
		}

		key := keyFunc(c)
		if key == "" {
			c.Next()
			return
		}

		limit := redis_rate.Limit{Rate: config.Rate, Burst: config.Burst, Period: time.Second}
		res, err := r.limiter.Allow(context.Background(), r.prefix+key, limit)
		if err != nil {
			r.logger.Error("rate limiter error", zap.Error(err))
			if r.failOpen {
				c.Next()
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rate limiting unavailable"})
			c.Abort()
			return
		}

		if res.Allowed == 0 {
			retryAfter := int(res.RetryAfter.Seconds()) + 1
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
