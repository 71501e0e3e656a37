// Package cart holds the session's in-memory shopping cart. One cart per
// application session; quantities are always clamped to the product's stock
// at entry time, never rejected.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/heladeria-app/storefront/internal/catalog"
)

// Entry is one cart line: the product as seen when it was added, plus the
// selected quantity. Quantity is always in [1, Product.Stock]; an entry that
// would reach 0 is removed instead.
type Entry struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart maps product id to entry, preserving insertion order for listing.
type Cart struct {
	mu      sync.Mutex
	entries map[string]*Entry
	seq     []string // insertion order of product ids
}

func New() *Cart {
	return &Cart{entries: make(map[string]*Entry)}
}

// AddProduct adds one unit of p: a new entry with quantity 1, or +1 on the
// existing entry, clamped to p.Stock. Products with no stock are ignored.
func (c *Cart) AddProduct(p catalog.Product) {
	if p.Stock <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[p.ID]; ok {
		if e.Quantity < e.Product.Stock {
			e.Quantity++
		}
		return
	}
	c.entries[p.ID] = &Entry{Product: p, Quantity: 1}
	c.seq = append(c.seq, p.ID)
}

// SetQuantity clamps qty to [0, stock] for the given entry; 0 removes it.
// Unknown product ids are a no-op.
func (c *Cart) SetQuantity(productID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[productID]
	if !ok {
		return
	}
	if qty > e.Product.Stock {
		qty = e.Product.Stock
	}
	if qty <= 0 {
		c.removeLocked(productID)
		return
	}
	e.Quantity = qty
}

// Remove deletes the entry unconditionally.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID string) {
	if _, ok := c.entries[productID]; !ok {
		return
	}
	delete(c.entries, productID)
	for i, id := range c.seq {
		if id == productID {
			c.seq = append(c.seq[:i], c.seq[i+1:]...)
			break
		}
	}
}

// Items returns the entries in insertion order.
func (c *Cart) Items() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, 0, len(c.seq))
	for _, id := range c.seq {
		out = append(out, *c.entries[id])
	}
	return out
}

// Total is the sum of price × quantity over all entries, recomputed per call.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}

// Count is the sum of quantities over all entries.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

// Len is the number of distinct products in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
	c.seq = nil
}
