// Package payment holds the client for the external payment provider.
// Transaction logic lives on the provider side; this package covers only
// the checkout/verify calls and the webhook signature contract.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CheckoutRequest describes a checkout to open with the provider.
type CheckoutRequest struct {
	Reference   string `json:"reference"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	CustomerID  string `json:"customer_id"`
}

// Checkout is the provider's response to an initiated transaction.
type Checkout struct {
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
}

// TransactionStatus reports the provider-side state of a transaction.
type TransactionStatus struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// Provider abstracts the external payment processor.
type Provider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	VerifyTransaction(ctx context.Context, reference string) (*TransactionStatus, error)
}

// HTTPProvider talks to the provider's REST API.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider builds a client with a bounded request timeout.
func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateCheckout opens a transaction with the provider.
func (p *HTTPProvider) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	var checkout Checkout
	if err := p.post(ctx, "/v1/checkouts", req, &checkout); err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}
	return &checkout, nil
}

// VerifyTransaction fetches the provider-side status for a reference.
func (p *HTTPProvider) VerifyTransaction(ctx context.Context, reference string) (*TransactionStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/transactions/"+reference, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("verify transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verify transaction: provider returned %d", resp.StatusCode)
	}

	var status TransactionStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("verify transaction: decode response: %w", err)
	}
	return &status, nil
}

func (p *HTTPProvider) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("provider returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
