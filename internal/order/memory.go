package order

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for local runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Order)}
}

func (s *MemoryStore) Insert(ctx context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// store a deep copy so callers cannot mutate history afterwards
	cp := *o
	cp.Items = append([]LineItem(nil), o.Items...)
	s.items[o.ID] = cp
	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	cp.Items = append([]LineItem(nil), o.Items...)
	return &cp, nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, len(s.items))
	for _, o := range s.items {
		cp := o
		cp.Items = append([]LineItem(nil), o.Items...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlacedAt.Equal(out[j].PlacedAt) {
			return out[i].PlacedAt.After(out[j].PlacedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
