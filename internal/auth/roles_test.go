package auth

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-service/internal/domain"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

func newRoleApp(identity *domain.Identity, handlerCalls *atomic.Int64, allowed ...domain.Role) *fiber.App {
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
	if identity != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(identityKey, identity)
			return c.Next()
		})
	}
	app.Get("/scoped", RequireRole(allowed...), func(c *fiber.Ctx) error {
		handlerCalls.Add(1)
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func testIdentity(role domain.Role) *domain.Identity {
	return &domain.Identity{
		SubjectID: "user-1",
		Role:      role,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestRequireRoleAllowsMember(t *testing.T) {
	var calls atomic.Int64
	app := newRoleApp(testIdentity(domain.RoleVendor), &calls, domain.RoleVendor)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/scoped", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int64(1), calls.Load())
}

func TestRequireRoleAllowsAnyOfSet(t *testing.T) {
	var calls atomic.Int64
	app := newRoleApp(testIdentity(domain.RoleAdmin), &calls, domain.RoleVendor, domain.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/scoped", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleForbidsNonMember(t *testing.T) {
	var calls atomic.Int64
	app := newRoleApp(testIdentity(domain.RoleCustomer), &calls, domain.RoleVendor)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/scoped", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, int64(0), calls.Load(), "handler must not run on role mismatch")
}

func TestRequireRoleWithoutIdentityIsServerError(t *testing.T) {
	var calls atomic.Int64
	app := newRoleApp(nil, &calls, domain.RoleVendor)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/scoped", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, int64(0), calls.Load())
}
