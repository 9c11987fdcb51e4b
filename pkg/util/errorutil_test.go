package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	err := NewForbidden("insufficient role")
	mapped := ToDomainError(err)
	require.Equal(t, "FORBIDDEN", mapped.Code)
	require.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
}

func TestToDomainErrorMapsFiberErrors(t *testing.T) {
	mapped := ToDomainError(fiber.ErrMethodNotAllowed)
	require.Equal(t, "METHOD_NOT_ALLOWED", mapped.Code)
	require.Equal(t, http.StatusMethodNotAllowed, mapped.HTTPStatus)

	mapped = ToDomainError(fiber.ErrNotFound)
	require.Equal(t, "NOT_FOUND", mapped.Code)
	require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorMapsMissingRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	require.Equal(t, "NOT_FOUND", mapped.Code)
}

func TestToDomainErrorHidesCollaboratorDetail(t *testing.T) {
	mapped := ToDomainError(errors.New("pq: connection refused to 10.0.0.5"))
	require.Equal(t, "INTERNAL_ERROR", mapped.Code)
	require.Equal(t, "internal server error", mapped.Message)
	require.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestRateLimitedError(t *testing.T) {
	mapped := ToDomainError(NewTooManyRequests("slow down"))
	require.Equal(t, "RATE_LIMITED", mapped.Code)
	require.Equal(t, http.StatusTooManyRequests, mapped.HTTPStatus)
}
