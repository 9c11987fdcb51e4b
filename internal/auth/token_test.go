package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-service/internal/domain"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken("user-1", domain.RoleVendor)
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))

	identity, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", identity.SubjectID)
	require.Equal(t, domain.RoleVendor, identity.Role)
	require.WithinDuration(t, exp, identity.ExpiresAt, time.Second)
}

func TestTokenManagerRejectsWrongKey(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("different-secret", 60)

	token, _, err := other.GenerateToken("user-1", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token := signedToken(t, tm.secret, &Claims{
		SubjectID: "user-1",
		Role:      domain.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := tm.ParseToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManagerRejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token := signedToken(t, tm.secret, &Claims{
		SubjectID: "user-1",
		Role:      domain.Role("SUPERUSER"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := tm.ParseToken(token)
	require.Error(t, err)
}

func TestTokenManagerRejectsWrongSigningMethod(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		SubjectID: "user-1",
		Role:      domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func signedToken(t *testing.T, secret []byte, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}
