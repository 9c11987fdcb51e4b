package events

import (
	"time"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPaymentInitiated EventType = "payment_initiated"
	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
	EventProductCreated   EventType = "product_created"
	EventProductDeleted   EventType = "product_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PaymentPayload accompanies payment events.
type PaymentPayload struct {
	Reference   string               `json:"reference"`
	AmountCents int64                `json:"amount_cents"`
	Currency    string               `json:"currency"`
	Status      domain.PaymentStatus `json:"status"`
}

// ProductPayload accompanies product events.
type ProductPayload struct {
	ProductID string `json:"product_id"`
	VendorID  string `json:"vendor_id"`
	Category  string `json:"category"`
}
