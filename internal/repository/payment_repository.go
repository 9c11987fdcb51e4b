package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// SalesSummary aggregates payment totals for analytics.
type SalesSummary struct {
	TotalCount     int64
	SucceededCount int64
	FailedCount    int64
	PendingCount   int64
	RevenueCents   int64
	Since          time.Time
}

// PaymentRepository defines persistence access for payment records.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByReference(ctx context.Context, reference string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, reference string, status domain.PaymentStatus) error
	Summarize(ctx context.Context, since time.Time) (*SalesSummary, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository returns a Postgres-backed implementation.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (user_id, reference, amount_cents, currency, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		payment.UserID,
		payment.Reference,
		payment.AmountCents,
		payment.Currency,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepository) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	const query = `
        SELECT id, user_id, reference, amount_cents, currency, status, created_at, updated_at
        FROM payments WHERE reference=$1`

	var payment domain.Payment
	if err := r.pool.QueryRow(ctx, query, reference).Scan(
		&payment.ID,
		&payment.UserID,
		&payment.Reference,
		&payment.AmountCents,
		&payment.Currency,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, reference string, status domain.PaymentStatus) error {
	const query = `
        UPDATE payments SET status=$1, updated_at=NOW()
        WHERE reference=$2`

	cmd, err := r.pool.Exec(ctx, query, status, reference)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepository) Summarize(ctx context.Context, since time.Time) (*SalesSummary, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='SUCCEEDED'),
               COUNT(*) FILTER (WHERE status='FAILED'),
               COUNT(*) FILTER (WHERE status='PENDING'),
               COALESCE(SUM(amount_cents) FILTER (WHERE status='SUCCEEDED'), 0)
        FROM payments WHERE created_at >= $1`

	summary := &SalesSummary{Since: since}
	if err := r.pool.QueryRow(ctx, query, since).Scan(
		&summary.TotalCount,
		&summary.SucceededCount,
		&summary.FailedCount,
		&summary.PendingCount,
		&summary.RevenueCents,
	); err != nil {
		return nil, err
	}
	return summary, nil
}
