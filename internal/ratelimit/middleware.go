package ratelimit

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// Limiter is the ingress rate limiting stage. Every request reaching it
// increments the caller's window counter exactly once, whether or not the
// request ultimately succeeds.
type Limiter struct {
	store  Store
	window time.Duration
	max    int64
	logger *zap.Logger
}

// NewLimiter builds a limiter over the given store.
func NewLimiter(store Store, window time.Duration, max int64, logger *zap.Logger) *Limiter {
	return &Limiter{store: store, window: window, max: max, logger: logger}
}

// Handle rejects the request with 429 once the caller exceeds the cap.
func (l *Limiter) Handle(c *fiber.Ctx) error {
	count, err := l.store.Increment(c.UserContext(), c.IP(), l.window)
	if err != nil {
		if l.logger != nil {
			l.logger.Error("rate limit store failure", zap.Error(err))
		}
		return apperrors.NewInternalError(err)
	}

	if count > l.max {
		if l.logger != nil {
			l.logger.Warn("rate limit exceeded",
				zap.String("ip", c.IP()),
				zap.Int64("count", count),
			)
		}
		return apperrors.NewTooManyRequests("request limit reached, retry later")
	}

	return c.Next()
}
