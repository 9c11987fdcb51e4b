package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/payment"
	"github.com/spec-kit/commerce-service/internal/repository"
	"github.com/spec-kit/commerce-service/internal/service"
	"github.com/spec-kit/commerce-service/internal/worker"
)

type fakePaymentRepo struct {
	byReference map[string]*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byReference: map[string]*domain.Payment{}}
}

func (r *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) error {
	p.ID = "pay-" + p.Reference
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	clone := *p
	r.byReference[p.Reference] = &clone
	return nil
}

func (r *fakePaymentRepo) GetByReference(_ context.Context, reference string) (*domain.Payment, error) {
	p, ok := r.byReference[reference]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, reference string, status domain.PaymentStatus) error {
	p, ok := r.byReference[reference]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Status = status
	return nil
}

func (r *fakePaymentRepo) Summarize(_ context.Context, since time.Time) (*repository.SalesSummary, error) {
	summary := &repository.SalesSummary{Since: since}
	for _, p := range r.byReference {
		summary.TotalCount++
		switch p.Status {
		case domain.PaymentStatusSucceeded:
			summary.SucceededCount++
			summary.RevenueCents += p.AmountCents
		case domain.PaymentStatusFailed:
			summary.FailedCount++
		default:
			summary.PendingCount++
		}
	}
	return summary, nil
}

type fakeProvider struct {
	status string
}

func (p *fakeProvider) CreateCheckout(_ context.Context, req payment.CheckoutRequest) (*payment.Checkout, error) {
	return &payment.Checkout{Reference: req.Reference, CheckoutURL: "https://provider.example/pay/" + req.Reference}, nil
}

func (p *fakeProvider) VerifyTransaction(_ context.Context, reference string) (*payment.TransactionStatus, error) {
	return &payment.TransactionStatus{Reference: reference, Status: p.status}, nil
}

func newTestPaymentService() (*service.PaymentService, *fakePaymentRepo, *payment.WebhookVerifier, *service.AnalyticsService) {
	repo := newFakePaymentRepo()
	verifier := payment.NewWebhookVerifier("whsec_test")
	dispatcher := events.NewInMemoryDispatcher()
	analytics := service.NewAnalyticsService(repo, nil)
	worker.StartAnalyticsWorker(dispatcher, analytics)

	svc := service.NewPaymentService(repo, &fakeProvider{status: "succeeded"}, verifier, dispatcher)
	return svc, repo, verifier, analytics
}

func TestInitiateRecordsPendingPayment(t *testing.T) {
	svc, repo, _, analytics := newTestPaymentService()

	record, checkoutURL, err := svc.Initiate(context.Background(), "user-1", 2500, "USD")
	require.NoError(t, err)
	require.NotEmpty(t, record.Reference)
	require.Equal(t, domain.PaymentStatusPending, record.Status)
	require.Contains(t, checkoutURL, record.Reference)

	stored, err := repo.GetByReference(context.Background(), record.Reference)
	require.NoError(t, err)
	require.Equal(t, int64(2500), stored.AmountCents)

	require.Equal(t, int64(1), analytics.Counters().PaymentsInitiated)
}

func TestWebhookTransitionsPaymentAndRequiresSignature(t *testing.T) {
	svc, _, verifier, analytics := newTestPaymentService()

	record, _, err := svc.Initiate(context.Background(), "user-1", 2500, "USD")
	require.NoError(t, err)

	body := []byte(`{"reference":"` + record.Reference + `","status":"succeeded"}`)

	// Wrong signature never touches the record.
	_, err = svc.HandleWebhook(context.Background(), body, "deadbeef")
	require.ErrorIs(t, err, payment.ErrBadSignature)

	updated, err := svc.HandleWebhook(context.Background(), body, verifier.Sign(body))
	require.NoError(t, err)
	require.Equal(t, domain.PaymentStatusSucceeded, updated.Status)
	require.Equal(t, int64(1), analytics.Counters().PaymentsSucceeded)
}

func TestWebhookReplayIsNoOp(t *testing.T) {
	svc, _, verifier, analytics := newTestPaymentService()

	record, _, err := svc.Initiate(context.Background(), "user-1", 1000, "USD")
	require.NoError(t, err)

	succeeded := []byte(`{"reference":"` + record.Reference + `","status":"succeeded"}`)
	_, err = svc.HandleWebhook(context.Background(), succeeded, verifier.Sign(succeeded))
	require.NoError(t, err)

	// A late contradictory webhook cannot move a settled payment.
	failed := []byte(`{"reference":"` + record.Reference + `","status":"failed"}`)
	final, err := svc.HandleWebhook(context.Background(), failed, verifier.Sign(failed))
	require.NoError(t, err)
	require.Equal(t, domain.PaymentStatusSucceeded, final.Status)

	require.Equal(t, int64(1), analytics.Counters().PaymentsSucceeded)
	require.Equal(t, int64(0), analytics.Counters().PaymentsFailed)
}

func TestWebhookRejectsUnknownReference(t *testing.T) {
	svc, _, verifier, _ := newTestPaymentService()

	body := []byte(`{"reference":"missing","status":"succeeded"}`)
	_, err := svc.HandleWebhook(context.Background(), body, verifier.Sign(body))
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestVerifyReconcilesWithProvider(t *testing.T) {
	svc, _, _, _ := newTestPaymentService()

	record, _, err := svc.Initiate(context.Background(), "user-1", 900, "EUR")
	require.NoError(t, err)

	verified, err := svc.Verify(context.Background(), record.Reference)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentStatusSucceeded, verified.Status)
}
