package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiterConfig defines the per-IP request budget.
type RateLimiterConfig struct {
	MaxRequests int
	Window      time.Duration
}

// RateLimiter throttles clients by IP using a redis counter per window.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimiterConfig
}

func NewRateLimiter(redisClient *redis.Client, config RateLimiterConfig) *RateLimiter {
	return &RateLimiter{redis: redisClient, config: config}
}

// Middleware enforces the limit. Redis failures fail open: throttling is a
// protection, not a dependency.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := rl.check(c, c.ClientIP())
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "Too Many Requests",
				"message": "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) check(c *gin.Context, ip string) (bool, time.Duration, error) {
	ctx := c.Request.Context()
	key := "ratelimit:" + ip

	count, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	// First hit in the window starts the clock.
	if count == 1 {
		if err := rl.redis.Expire(ctx, key, rl.config.Window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(rl.config.MaxRequests) {
		ttl, err := rl.redis.TTL(ctx, key).Result()
		if err != nil {
			ttl = rl.config.Window
		}
		return false, ttl, nil
	}

	return true, 0, nil
}
