package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/service"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// Sales queries default to the trailing 30 days.
const defaultSalesWindow = 30 * 24 * time.Hour

// AnalyticsHandler exposes admin analytics endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Sales handles GET /api/analytics/sales.
func (h *AnalyticsHandler) Sales(c *fiber.Ctx) error {
	window := defaultSalesWindow
	if days := c.QueryInt("days"); days > 0 {
		window = time.Duration(days) * 24 * time.Hour
	}

	summary, err := h.analytics.SalesSummary(c.Context(), window)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"since":           summary.Since,
			"total_count":     summary.TotalCount,
			"succeeded_count": summary.SucceededCount,
			"failed_count":    summary.FailedCount,
			"pending_count":   summary.PendingCount,
			"revenue_cents":   summary.RevenueCents,
			"live":            h.analytics.Counters(),
		},
	})
}

// Inventory handles GET /api/analytics/inventory.
func (h *AnalyticsHandler) Inventory(c *fiber.Ctx) error {
	inventory, err := h.analytics.InventorySummary(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}

	views := make([]fiber.Map, 0, len(inventory))
	for _, entry := range inventory {
		views = append(views, fiber.Map{
			"category":      entry.Category,
			"product_count": entry.ProductCount,
			"total_stock":   entry.TotalStock,
		})
	}
	return c.JSON(fiber.Map{"data": views})
}
