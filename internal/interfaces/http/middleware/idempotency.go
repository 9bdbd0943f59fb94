package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-challenge.backend/internal/interfaces/http/response"
	"campus-challenge.backend/pkg/logger"
	"campus-challenge.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	idempotencyProcessing = "processing"
	codeIdempotency       = "idempotency_conflict"
	msgIdempotency        = "相同的请求正在处理中"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware replays the stored 2xx body for a repeated
// Idempotency-Key from the same client IP. Concurrent duplicates get 409.
// Without redis the request is processed normally.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		storageKey := fmt.Sprintf("idempotency:%s:%s", c.ClientIP(), key)

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			if val == idempotencyProcessing {
				response.ErrorWithError(c, http.StatusConflict, codeIdempotency, msgIdempotency)
				c.Abort()
				return
			}
			c.Header("X-Idempotency-Hit", "true")
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(val))
			c.Abort()
			return
		case errors.Is(err, redis.Nil):
		default:
			if !errors.Is(err, redis.ErrDisabled) {
				logger.Warn(ctx, "Idempotency lookup failed", zap.Error(err))
			}
			c.Next()
			return
		}

		ok, err := redisSetNX(ctx, storageKey, idempotencyProcessing, LockDuration)
		if err != nil {
			logger.Warn(ctx, "Idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			response.ErrorWithError(c, http.StatusConflict, codeIdempotency, msgIdempotency)
			c.Abort()
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			_ = redisSet(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			// retry allowed after a failure
			_ = redisDel(ctx, storageKey)
		}
	}
}
