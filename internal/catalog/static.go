package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// StaticSource serves a fixed product list from memory. Used for local
// development and as the fallback catalog when no remote source is configured.
type StaticSource struct {
	products []Product
}

func NewStaticSource(products []Product) *StaticSource {
	return &StaticSource{products: products}
}

// NewSeededSource returns a StaticSource preloaded with the shop's house flavors.
func NewSeededSource() *StaticSource {
	return NewStaticSource([]Product{
		{ID: "1", Name: "Capuchino frío", Description: "Delicioso capuchino helado con crema y cacao.", Price: decimal.RequireFromString("6.50"), Stock: 10},
		{ID: "2", Name: "Copa de helado", Description: "Helado surtido con frutas frescas y salsa de chocolate.", Price: decimal.RequireFromString("8.00"), Stock: 15},
		{ID: "4", Name: "Granizado", Description: "Bebida helada y refrescante con sabor natural.", Price: decimal.RequireFromString("4.00"), Stock: 5},
		{ID: "5", Name: "Helado de fresa", Description: "Cremoso helado artesanal de fresa natural.", Price: decimal.RequireFromString("4.50"), Stock: 8},
	})
}

func (s *StaticSource) Fetch(ctx context.Context) ([]Product, error) {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}
