package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/api/dto"
	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/payment"
	"github.com/spec-kit/commerce-service/internal/service"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// PaymentsHandler exposes payment endpoints, including the provider webhook.
type PaymentsHandler struct {
	payments *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(payments *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: payments}
}

// Initiate handles POST /api/payments/initiate.
func (h *PaymentsHandler) Initiate(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.AmountCents <= 0 || req.Currency == "" {
		return fiber.NewError(http.StatusBadRequest, "positive amount and currency required")
	}

	record, checkoutURL, err := h.payments.Initiate(c.Context(), identity.SubjectID, req.AmountCents, req.Currency)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"payment":      paymentView(record),
			"checkout_url": checkoutURL,
		},
	})
}

// Verify handles POST /api/payments/verify.
func (h *PaymentsHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Reference == "" {
		return fiber.NewError(http.StatusBadRequest, "reference required")
	}

	record, err := h.payments.Verify(c.Context(), req.Reference)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": paymentView(record)})
}

// Webhook handles POST /api/payments/webhook. The route bypasses the
// authentication gate; authenticity comes from the provider signature
// checked inside the service.
func (h *PaymentsHandler) Webhook(c *fiber.Ctx) error {
	signature := c.Get(payment.SignatureHeader)
	if signature == "" {
		return apperrors.NewUnauthorized("missing provider signature")
	}

	record, err := h.payments.HandleWebhook(c.Context(), c.Body(), signature)
	if err != nil {
		if errors.Is(err, payment.ErrBadSignature) {
			return apperrors.NewUnauthorized("invalid provider signature")
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"reference": record.Reference, "status": record.Status}})
}

func paymentView(record *domain.Payment) fiber.Map {
	return fiber.Map{
		"id":           record.ID,
		"reference":    record.Reference,
		"amount_cents": record.AmountCents,
		"currency":     record.Currency,
		"status":       record.Status,
	}
}
