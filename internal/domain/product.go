package domain

import "time"

// Product is a vendor-owned catalog entry.
type Product struct {
	ID          string
	VendorID    string
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Stock       int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
