package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/api/http/handlers"
	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/domain"
)

// Route declares one table entry. RequiresAuth is an explicit attribute so
// exemptions like the payment webhook are visible here instead of being
// inferred from registration order.
type Route struct {
	Method       string
	Path         string
	RequiresAuth bool
	Roles        []domain.Role
	Handler      fiber.Handler
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Home           *handlers.HomeHandler
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	Payments       *handlers.PaymentsHandler
	Cloud          *handlers.CloudHandler
	Admin          *handlers.AdminHandler
	Analytics      *handlers.AnalyticsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// Routes is the full route table. Public entries carry no gates,
// authenticated entries the auth gate only, role-scoped entries the auth
// gate followed by a role gate.
func Routes(cfg RouteConfig) []Route {
	vendor := []domain.Role{domain.RoleVendor}
	admin := []domain.Role{domain.RoleAdmin}

	return []Route{
		{Method: fiber.MethodGet, Path: "/", Handler: cfg.Home.Index},
		{Method: fiber.MethodGet, Path: "/health/live", Handler: cfg.Health.Live},
		{Method: fiber.MethodGet, Path: "/health/ready", Handler: cfg.Health.Ready},

		{Method: fiber.MethodPost, Path: "/api/auth/register", Handler: cfg.Auth.Register},
		{Method: fiber.MethodPost, Path: "/api/auth/login", Handler: cfg.Auth.Login},
		{Method: fiber.MethodPost, Path: "/api/auth/reset-password", Handler: cfg.Auth.ResetPassword},
		{Method: fiber.MethodGet, Path: "/api/auth/user", RequiresAuth: true, Handler: cfg.Auth.CurrentUser},

		{Method: fiber.MethodPost, Path: "/api/products", RequiresAuth: true, Roles: vendor, Handler: cfg.Products.Create},
		{Method: fiber.MethodGet, Path: "/api/products", Handler: cfg.Products.List},
		{Method: fiber.MethodGet, Path: "/api/products/categories", Handler: cfg.Products.Categories},
		{Method: fiber.MethodPut, Path: "/api/products/:id", RequiresAuth: true, Roles: vendor, Handler: cfg.Products.Update},
		{Method: fiber.MethodDelete, Path: "/api/products/:id", RequiresAuth: true, Roles: vendor, Handler: cfg.Products.Delete},

		// The provider cannot present a bearer credential; authenticity is
		// checked inside the handler via the provider signature.
		{Method: fiber.MethodPost, Path: "/api/payments/webhook", RequiresAuth: false, Handler: cfg.Payments.Webhook},
		{Method: fiber.MethodPost, Path: "/api/payments/initiate", RequiresAuth: true, Handler: cfg.Payments.Initiate},
		{Method: fiber.MethodPost, Path: "/api/payments/verify", RequiresAuth: true, Handler: cfg.Payments.Verify},

		{Method: fiber.MethodPost, Path: "/api/cloud/upload", RequiresAuth: true, Handler: cfg.Cloud.Upload},
		{Method: fiber.MethodGet, Path: "/api/cloud/files", RequiresAuth: true, Handler: cfg.Cloud.Files},

		{Method: fiber.MethodGet, Path: "/api/admin/users", RequiresAuth: true, Roles: admin, Handler: cfg.Admin.Users},
		{Method: fiber.MethodGet, Path: "/api/admin/vendors", RequiresAuth: true, Roles: admin, Handler: cfg.Admin.Vendors},

		{Method: fiber.MethodGet, Path: "/api/analytics/sales", RequiresAuth: true, Roles: admin, Handler: cfg.Analytics.Sales},
		{Method: fiber.MethodGet, Path: "/api/analytics/inventory", RequiresAuth: true, Roles: admin, Handler: cfg.Analytics.Inventory},
	}
}

// RegisterRoutes wires the route table. Each (method, path) pair registers
// exactly once, and each entry's gates run in fixed order: authentication,
// then roles, then the handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) error {
	return register(app, cfg.AuthMiddleware, Routes(cfg))
}

func register(app *fiber.App, authMW *auth.AuthMiddleware, routes []Route) error {
	seen := make(map[string]struct{}, len(routes))

	for _, route := range routes {
		key := route.Method + " " + route.Path
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate route registration: %s", key)
		}
		seen[key] = struct{}{}

		if len(route.Roles) > 0 && !route.RequiresAuth {
			return fmt.Errorf("route %s declares roles without authentication", key)
		}
		if route.RequiresAuth && authMW == nil {
			return fmt.Errorf("route %s requires authentication but no gate is configured", key)
		}

		chain := make([]fiber.Handler, 0, 3)
		if route.RequiresAuth {
			chain = append(chain, authMW.Handle)
		}
		if len(route.Roles) > 0 {
			chain = append(chain, auth.RequireRole(route.Roles...))
		}
		chain = append(chain, route.Handler)

		app.Add(route.Method, route.Path, chain...)
	}
	return nil
}
