package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redispkg "campus-challenge.backend/pkg/redis"
)

func rateLimitedRouter(limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submit", RateLimitMiddleware("submit", limit, window), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doPost(r http.Handler) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
	return w
}

func TestRateLimitMiddleware_BlocksAfterLimit(t *testing.T) {
	srv := startMiniRedis(t)
	r := rateLimitedRouter(2, time.Minute)

	assert.Equal(t, http.StatusOK, doPost(r).Code)
	w := doPost(r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = doPost(r)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limited")

	srv.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, doPost(r).Code)
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	redispkg.SetClient(nil)
	r := rateLimitedRouter(1, time.Minute)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doPost(r).Code)
	}

	orig := redisIncrWindow
	t.Cleanup(func() { redisIncrWindow = orig })
	redisIncrWindow = func(context.Context, string, time.Duration) (int64, error) {
		return 0, errors.New("boom")
	}
	assert.Equal(t, http.StatusOK, doPost(r).Code)
	assert.Equal(t, http.StatusOK, doPost(r).Code)
}

func TestRateLimitMiddleware_DisabledByZeroLimit(t *testing.T) {
	orig := redisIncrWindow
	t.Cleanup(func() { redisIncrWindow = orig })
	redisIncrWindow = func(context.Context, string, time.Duration) (int64, error) {
		t.Fatal("redis must not be called")
		return 0, nil
	}

	r := rateLimitedRouter(0, time.Minute)
	assert.Equal(t, http.StatusOK, doPost(r).Code)
}
