package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCounter struct {
	mu   sync.Mutex
	hits map[string]int64
	err  error
}

func (m *memCounter) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hits == nil {
		m.hits = make(map[string]int64)
	}
	m.hits[key]++
	return m.hits[key], window, nil
}

func newLimitedApp(counter Counter, limit int) *fiber.App {
	app := fiber.New()
	app.Use(NewRateLimiter(counter, limit, 60).Handler())
	app.Get("/ping", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	app := newLimitedApp(&memCounter{}, 2)

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, "request %d", i+1)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
		assert.Equal(t, "60", resp.Header.Get("X-RateLimit-Reset"))
	}
}

func TestRateLimiterRemainingHeader(t *testing.T) {
	app := newLimitedApp(&memCounter{}, 5)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, "4", resp.Header.Get("X-RateLimit-Remaining"))
}

func TestRateLimiterFailsOpen(t *testing.T) {
	app := newLimitedApp(&memCounter{err: errors.New("connection refused")}, 1)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"))
	}
}
