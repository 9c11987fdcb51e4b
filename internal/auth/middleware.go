package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-service/internal/domain"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

const identityKey = "auth_identity"

// The caller never learns which verification step failed; every rejection
// carries the same message so the gate cannot be used as an oracle.
const unauthorizedMessage = "invalid or missing credentials"

// AuthMiddleware validates bearer tokens and resolves identities. It holds
// no mutable state and performs no I/O; each evaluation depends only on the
// credential, the signing key, and the current time.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle enforces authentication for protected routes. Failures halt the
// pipeline before the handler runs.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return m.reject(c, "missing_header", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return m.reject(c, "malformed_header", nil)
	}

	identity, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return m.reject(c, classifyTokenError(err), err)
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, reason string, err error) error {
	if m.logger != nil {
		m.logger.Debug("authentication rejected",
			zap.String("path", c.Path()),
			zap.String("reason", reason),
			zap.Error(err),
		)
	}
	return apperrors.NewUnauthorized(unauthorizedMessage)
}

// classifyTokenError labels the failure for server-side diagnostics only.
func classifyTokenError(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad_signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
