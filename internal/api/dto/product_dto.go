package dto

// ProductRequest payload for creating or updating a product.
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int32  `json:"stock"`
}
