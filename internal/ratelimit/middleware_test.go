package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

func newLimitedApp(limiter *Limiter) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			domainErr := apperrors.ToDomainError(err)
			c.Status(domainErr.HTTPStatus)
			return c.JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
		}
		return nil
	})
	app.Use(limiter.Handle)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestLimiterCapsWindowAtEightyRequests(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	limiter := NewLimiter(store, 10*time.Minute, 80, zap.NewNop())
	app := newLimitedApp(limiter)

	// All requests in app.Test share one client address, i.e. one key.
	for i := 1; i <= 80; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d should pass", i)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "81st request must be rejected")

	// Once the window elapses the counter resets.
	now = now.Add(10*time.Minute + time.Second)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLimiterCountsRejectedRequestsToo(t *testing.T) {
	store := NewMemoryStore()
	limiter := NewLimiter(store, 10*time.Minute, 2, zap.NewNop())
	app := newLimitedApp(limiter)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// Rejected attempts still increment the window counter exactly once.
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	}

	count, err := store.Increment(context.Background(), "0.0.0.0", 10*time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(6), count)
}
