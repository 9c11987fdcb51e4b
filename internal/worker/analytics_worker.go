package worker

import (
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/service"
)

// StartAnalyticsWorker subscribes the analytics service to domain events
// so its live counters track payments and catalog churn.
func StartAnalyticsWorker(dispatcher events.Dispatcher, analytics *service.AnalyticsService) {
	if dispatcher == nil || analytics == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventPaymentInitiated,
		events.EventPaymentSucceeded,
		events.EventPaymentFailed,
		events.EventProductCreated,
		events.EventProductDeleted,
	} {
		dispatcher.Subscribe(eventType, analytics.Record)
	}
}
