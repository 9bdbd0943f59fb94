package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-challenge.backend/internal/interfaces/http/response"
	"campus-challenge.backend/pkg/logger"
	"campus-challenge.backend/pkg/redis"
)

const msgRateLimited = "提交过于频繁，请稍后再试"

var redisIncrWindow = redis.IncrWindow

// RateLimitMiddleware allows at most limit requests per client IP in each
// fixed window. Without redis, or on redis errors, requests pass through.
func RateLimitMiddleware(name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || window <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())

		n, err := redisIncrWindow(ctx, key, window)
		if err != nil {
			if err != redis.ErrDisabled {
				logger.Warn(ctx, "Rate limit check skipped", zap.Error(err))
			}
			c.Next()
			return
		}

		remaining := int64(limit) - n
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if n > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window/time.Second)))
			response.ErrorWithError(c, http.StatusTooManyRequests, "rate_limited", msgRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}
