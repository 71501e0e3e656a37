package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a snapshot of a cart entry taken at placement time. It is
// decoupled from the live catalog: renaming or repricing a product afterwards
// must never change order history.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// Subtotal is unit price × quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is the immutable record of a completed purchase. Never mutated after
// placement.
type Order struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	PlacedAt time.Time       `json:"placed_at"`
	Total    decimal.Decimal `json:"total"`
	Items    []LineItem      `json:"items"`
}
