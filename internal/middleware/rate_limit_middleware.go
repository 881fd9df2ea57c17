package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/trivia-chatbot/internal/logging"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests задаёт максимальное количество запросов за Window
	MaxRequests int
	// Window задаёт временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix задаёт префикс для ключей в Redis
	KeyPrefix string
}

// DefaultAPIRateLimitConfig возвращает конфигурацию для группы /api
func DefaultAPIRateLimitConfig(requests int, windowSec int) RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: requests,
		Window:      time.Duration(windowSec) * time.Second,
		KeyPrefix:   "rl:api",
	}
}

// RateLimiter - счетчик запросов с фиксированным окном в Redis
type RateLimiter struct {
	redisClient redis.UniversalClient
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(redisClient redis.UniversalClient) *RateLimiter {
	return &RateLimiter{redisClient: redisClient}
}

// hit увеличивает счетчик ключа и возвращает его значение и секунды до сброса окна
func (rl *RateLimiter) hit(ctx context.Context, key string, window time.Duration) (int64, int, error) {
	count, err := rl.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	// Первый запрос в окне задает TTL
	if count == 1 {
		if err := rl.redisClient.Expire(ctx, key, window).Err(); err != nil {
			logging.Warnf("[RateLimiter] Failed to set TTL for key %s: %v", key, err)
		}
	}

	retryAfter := int(window.Seconds())
	if ttl, err := rl.redisClient.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		retryAfter = int(ttl.Seconds())
	}
	return count, retryAfter, nil
}

// Limit ограничивает количество запросов с одного IP к одному маршруту.
// При недоступности Redis запрос пропускается.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, clientIP, path)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, retryAfter, err := rl.hit(ctx, key, cfg.Window)
		if err != nil {
			logging.Warnf("[RateLimiter] Redis error for key %s: %v. Allowing request (fail-open).", key, err)
			c.Next()
			return
		}

		remaining := max(cfg.MaxRequests-int(count), 0)
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(retryAfter))

		if int(count) > cfg.MaxRequests {
			logging.Warnf("[RateLimiter] Rate limit exceeded for IP=%s path=%s. Count=%d, Limit=%d",
				clientIP, path, count, cfg.MaxRequests)

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
