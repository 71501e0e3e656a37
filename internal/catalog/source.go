package catalog

import (
	"context"
	"errors"
	"strings"
)

// ErrSourceUnavailable reports that the catalog source could not be reached.
// Callers degrade to a cached or empty list instead of propagating it.
var ErrSourceUnavailable = errors.New("catalog source unavailable")

// Source supplies the product list. Implementations are selected at startup
// (static seed, remote HTTP endpoint, or Postgres).
type Source interface {
	Fetch(ctx context.Context) ([]Product, error)
}

// Filter returns the products whose name contains q, case-insensitive.
// A blank query returns the input unchanged.
func Filter(products []Product, q string) []Product {
	q = strings.TrimSpace(q)
	if q == "" {
		return products
	}
	needle := strings.ToLower(q)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}
