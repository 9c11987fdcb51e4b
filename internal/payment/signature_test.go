package payment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWebhookVerifierAcceptsValidSignature(t *testing.T) {
	verifier := NewWebhookVerifier("whsec_test")
	payload := []byte(`{"reference":"ref-1","status":"succeeded"}`)

	require.NoError(t, verifier.Verify(payload, verifier.Sign(payload)))
}

func TestWebhookVerifierRejectsTamperedPayload(t *testing.T) {
	verifier := NewWebhookVerifier("whsec_test")
	payload := []byte(`{"reference":"ref-1","status":"succeeded"}`)
	signature := verifier.Sign(payload)

	tampered := []byte(`{"reference":"ref-1","status":"failed"}`)
	require.ErrorIs(t, verifier.Verify(tampered, signature), ErrBadSignature)
}

func TestWebhookVerifierRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"reference":"ref-1"}`)
	signature := NewWebhookVerifier("other-secret").Sign(payload)

	require.ErrorIs(t, NewWebhookVerifier("whsec_test").Verify(payload, signature), ErrBadSignature)
}

func TestWebhookVerifierRejectsGarbageSignature(t *testing.T) {
	verifier := NewWebhookVerifier("whsec_test")
	require.ErrorIs(t, verifier.Verify([]byte("{}"), "not-hex"), ErrBadSignature)
}
