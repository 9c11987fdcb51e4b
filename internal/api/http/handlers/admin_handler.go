package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// AdminHandler exposes account listings for administrators.
type AdminHandler struct {
	users repository.UserRepository
}

// NewAdminHandler constructs handler.
func NewAdminHandler(users repository.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	return h.listByRole(c, domain.RoleCustomer)
}

// Vendors handles GET /api/admin/vendors.
func (h *AdminHandler) Vendors(c *fiber.Ctx) error {
	return h.listByRole(c, domain.RoleVendor)
}

func (h *AdminHandler) listByRole(c *fiber.Ctx, role domain.Role) error {
	accounts, err := h.users.ListByRole(c.Context(), role)
	if err != nil {
		return apperrors.MapError(err)
	}

	views := make([]fiber.Map, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, fiber.Map{
			"id":         account.ID,
			"name":       account.Name,
			"email":      account.Email,
			"role":       account.Role,
			"status":     account.Status,
			"created_at": account.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": views})
}
