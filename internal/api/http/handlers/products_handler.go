package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/api/dto"
	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/service"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// ProductsHandler exposes catalog endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// Create handles POST /api/products (vendor only).
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Category == "" || req.PriceCents <= 0 {
		return fiber.NewError(http.StatusBadRequest, "name, category, positive price required")
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
	}
	if err := h.products.Create(c.Context(), identity.SubjectID, product); err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": productView(product)})
}

// List handles GET /api/products (public).
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}

	views := make([]fiber.Map, 0, len(products))
	for i := range products {
		views = append(views, productView(&products[i]))
	}
	return c.JSON(fiber.Map{"data": views})
}

// Categories handles GET /api/products/categories (public).
func (h *ProductsHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.products.Categories(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(fiber.Map{"data": categories})
}

// Update handles PUT /api/products/:id (owning vendor only).
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.products.Update(c.Context(), identity.SubjectID, c.Params("id"), &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
	})
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{"data": productView(product)})
}

// Delete handles DELETE /api/products/:id (owning vendor only).
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.products.Delete(c.Context(), identity.SubjectID, c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func productView(product *domain.Product) fiber.Map {
	return fiber.Map{
		"id":          product.ID,
		"vendor_id":   product.VendorID,
		"name":        product.Name,
		"description": product.Description,
		"category":    product.Category,
		"price_cents": product.PriceCents,
		"stock":       product.Stock,
	}
}
