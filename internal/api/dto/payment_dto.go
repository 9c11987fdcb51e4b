package dto

// InitiatePaymentRequest payload for opening a checkout.
type InitiatePaymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// VerifyPaymentRequest payload for reconciling a transaction.
type VerifyPaymentRequest struct {
	Reference string `json:"reference"`
}
