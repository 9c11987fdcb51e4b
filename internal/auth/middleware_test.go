package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-service/internal/domain"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

func newGatedApp(t *testing.T, tm *TokenManager, handlerCalls *atomic.Int64) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			domainErr := apperrors.ToDomainError(err)
			c.Status(domainErr.HTTPStatus)
			return c.JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message}})
		}
		return nil
	})

	mw := NewAuthMiddleware(tm, zap.NewNop())
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		handlerCalls.Add(1)
		identity, ok := IdentityFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"subject": identity.SubjectID})
	})
	return app
}

func TestAuthMiddlewareRejectsUniformly(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	var handlerCalls atomic.Int64
	app := newGatedApp(t, tm, &handlerCalls)

	foreign, _, err := NewTokenManager("other-secret", 60).GenerateToken("user-1", domain.RoleCustomer)
	require.NoError(t, err)

	expired := signedToken(t, tm.secret, &Claims{
		SubjectID: "user-1",
		Role:      domain.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	cases := map[string]string{
		"missing header":   "",
		"malformed header": "Token abc",
		"garbage token":    "Bearer not-a-jwt",
		"wrong key":        "Bearer " + foreign,
		"expired":          "Bearer " + expired,
	}

	var bodies []string
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err, name)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err, name)
		bodies = append(bodies, string(body))
	}

	// No oracle leakage: every failure class yields the identical body.
	for _, body := range bodies[1:] {
		require.Equal(t, bodies[0], body)
	}
	require.Equal(t, int64(0), handlerCalls.Load(), "handler must never run on gate failure")
}

func TestAuthMiddlewarePassesValidCredential(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	var handlerCalls atomic.Int64
	app := newGatedApp(t, tm, &handlerCalls)

	token, _, err := tm.GenerateToken("user-42", domain.RoleCustomer)
	require.NoError(t, err)

	// Gate evaluation is idempotent: the same credential passes N times.
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	require.Equal(t, int64(5), handlerCalls.Load())
}
