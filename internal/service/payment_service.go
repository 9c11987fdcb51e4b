package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/payment"
	"github.com/spec-kit/commerce-service/internal/repository"
)

// WebhookEvent is the payload the provider posts to the webhook endpoint.
type WebhookEvent struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// PaymentService coordinates transactions against the payment provider.
type PaymentService struct {
	payments   repository.PaymentRepository
	provider   payment.Provider
	verifier   *payment.WebhookVerifier
	dispatcher events.Dispatcher
}

// NewPaymentService builds the service.
func NewPaymentService(payments repository.PaymentRepository, provider payment.Provider, verifier *payment.WebhookVerifier, dispatcher events.Dispatcher) *PaymentService {
	return &PaymentService{
		payments:   payments,
		provider:   provider,
		verifier:   verifier,
		dispatcher: dispatcher,
	}
}

// Initiate opens a checkout with the provider and records a pending payment.
func (s *PaymentService) Initiate(ctx context.Context, userID string, amountCents int64, currency string) (*domain.Payment, string, error) {
	reference := uuid.NewString()

	checkout, err := s.provider.CreateCheckout(ctx, payment.CheckoutRequest{
		Reference:   reference,
		AmountCents: amountCents,
		Currency:    currency,
		CustomerID:  userID,
	})
	if err != nil {
		return nil, "", err
	}

	record := &domain.Payment{
		UserID:      userID,
		Reference:   reference,
		AmountCents: amountCents,
		Currency:    currency,
		Status:      domain.PaymentStatusPending,
	}
	if err := s.payments.Create(ctx, record); err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.EventPaymentInitiated, record)
	return record, checkout.CheckoutURL, nil
}

// Verify reconciles a payment with the provider's view of the transaction.
func (s *PaymentService) Verify(ctx context.Context, reference string) (*domain.Payment, error) {
	record, err := s.payments.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	status, err := s.provider.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, record, status.Status)
}

// HandleWebhook validates the provider signature over the raw body, then
// applies the reported status. Signature validation happens here because
// the webhook route bypasses the authentication gate.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) (*domain.Payment, error) {
	if err := s.verifier.Verify(body, signature); err != nil {
		return nil, err
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}
	if event.Reference == "" {
		return nil, fmt.Errorf("webhook payload missing reference")
	}

	record, err := s.payments.GetByReference(ctx, event.Reference)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, record, event.Status)
}

func (s *PaymentService) transition(ctx context.Context, record *domain.Payment, providerStatus string) (*domain.Payment, error) {
	var next domain.PaymentStatus
	switch strings.ToLower(providerStatus) {
	case "succeeded", "success", "paid":
		next = domain.PaymentStatusSucceeded
	case "failed", "cancelled", "expired":
		next = domain.PaymentStatusFailed
	default:
		next = domain.PaymentStatusPending
	}

	if next == record.Status {
		return record, nil
	}
	// Terminal states never move backwards; a late or replayed webhook for
	// a settled payment is a no-op.
	if record.Status != domain.PaymentStatusPending {
		return record, nil
	}

	if err := s.payments.UpdateStatus(ctx, record.Reference, next); err != nil {
		return nil, err
	}
	record.Status = next

	switch next {
	case domain.PaymentStatusSucceeded:
		s.publish(ctx, events.EventPaymentSucceeded, record)
	case domain.PaymentStatusFailed:
		s.publish(ctx, events.EventPaymentFailed, record)
	}
	return record, nil
}

func (s *PaymentService) publish(ctx context.Context, eventType events.EventType, record *domain.Payment) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: record.ID,
		Timestamp: time.Now(),
		Payload: events.PaymentPayload{
			Reference:   record.Reference,
			AmountCents: record.AmountCents,
			Currency:    record.Currency,
			Status:      record.Status,
		},
	})
}
