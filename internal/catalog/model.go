package catalog

import "github.com/shopspring/decimal"

// Product is a purchasable item as supplied by the catalog source.
// Immutable for the lifetime of a session once loaded.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	// Price uses decimal to avoid float rounding in totals (NUMERIC in Postgres).
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
	Stock    int             `json:"stock"`
}
