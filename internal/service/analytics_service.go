package service

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/repository"
)

// LiveCounters are event-driven tallies accumulated since process start.
// They complement the SQL aggregates with a view that needs no query.
type LiveCounters struct {
	PaymentsInitiated int64 `json:"payments_initiated"`
	PaymentsSucceeded int64 `json:"payments_succeeded"`
	PaymentsFailed    int64 `json:"payments_failed"`
	ProductsCreated   int64 `json:"products_created"`
	ProductsDeleted   int64 `json:"products_deleted"`
}

// AnalyticsService answers the admin analytics queries.
type AnalyticsService struct {
	payments repository.PaymentRepository
	products repository.ProductRepository

	mu       sync.Mutex
	counters LiveCounters
}

// NewAnalyticsService builds the service.
func NewAnalyticsService(payments repository.PaymentRepository, products repository.ProductRepository) *AnalyticsService {
	return &AnalyticsService{payments: payments, products: products}
}

// SalesSummary aggregates payments over the trailing window.
func (s *AnalyticsService) SalesSummary(ctx context.Context, window time.Duration) (*repository.SalesSummary, error) {
	since := time.Now().Add(-window)
	return s.payments.Summarize(ctx, since)
}

// InventorySummary aggregates catalog stock per category.
func (s *AnalyticsService) InventorySummary(ctx context.Context) ([]repository.CategoryInventory, error) {
	return s.products.InventoryByCategory(ctx)
}

// Counters returns a snapshot of the live event tallies.
func (s *AnalyticsService) Counters() LiveCounters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}

// Record updates live tallies from a domain event.
func (s *AnalyticsService) Record(_ context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event.Type {
	case events.EventPaymentInitiated:
		s.counters.PaymentsInitiated++
	case events.EventPaymentSucceeded:
		s.counters.PaymentsSucceeded++
	case events.EventPaymentFailed:
		s.counters.PaymentsFailed++
	case events.EventProductCreated:
		s.counters.ProductsCreated++
	case events.EventProductDeleted:
		s.counters.ProductsDeleted++
	}
	return nil
}
