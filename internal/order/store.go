package order

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("order not found")

// Store is the durable log of placed orders. Insert is the only write; orders
// are never updated or deleted.
type Store interface {
	Insert(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// ListAll returns every order, newest first (PlacedAt desc, ID desc tiebreak).
	ListAll(ctx context.Context) ([]Order, error)
}
