package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pos/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, window)
	rl.now = clock.Now
	t.Cleanup(rl.Close)
	return rl, clock
}

func TestRateLimiter_Take(t *testing.T) {
	rl, clock := newTestLimiter(t, 3, time.Minute)

	for i := 2; i >= 0; i-- {
		allowed, remaining, _ := rl.Take("10.0.0.1")
		require.True(t, allowed)
		assert.Equal(t, i, remaining)
	}

	allowed, remaining, resetAt := rl.Take("10.0.0.1")
	assert.False(t, allowed)
	assert.Zero(t, remaining)
	assert.Equal(t, clock.Now().Add(time.Minute), resetAt)

	allowed, _, _ = rl.Take("10.0.0.2")
	assert.True(t, allowed, "keys are independent")

	clock.Advance(time.Minute)
	allowed, remaining, _ = rl.Take("10.0.0.1")
	assert.True(t, allowed, "new window")
	assert.Equal(t, 2, remaining)
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl, _ := newTestLimiter(t, 50, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _, _ := rl.Take("shared"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestRateLimiter_CloseIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Close()
	rl.Close()
}

func TestRateLimit_Middleware(t *testing.T) {
	rl, clock := newTestLimiter(t, 2, 30*time.Second)

	router := gin.New()
	router.Use(RequestID())
	router.POST("/api/v1/auth/login", RateLimit(rl), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	serve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "192.0.2.10:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := serve()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, serve().Code)

	clock.Advance(10 * time.Second)
	limited := serve()
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "20", limited.Header().Get("Retry-After"))

	var resp dto.Response
	require.NoError(t, json.Unmarshal(limited.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeRateLimited, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)
}

func TestRateLimitByKey(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)

	router := gin.New()
	router.GET("/test", RateLimitByKey(rl, func(c *gin.Context) string {
		return c.GetHeader("X-Client")
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	serve := func(client string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Client", client)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve("a"))
	assert.Equal(t, http.StatusTooManyRequests, serve("a"))
	assert.Equal(t, http.StatusOK, serve("b"))
}
