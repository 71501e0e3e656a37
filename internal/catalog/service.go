package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ErrProductNotFound reports a product id absent from the loaded catalog.
var ErrProductNotFound = errors.New("product not found")

// Service owns the session's view of the catalog: it fetches through the
// configured Source, keeps the last good list, and degrades to that (or an
// empty list) when the source is unavailable. Concurrent fetches for the
// same session collapse into one request.
type Service struct {
	source Source
	log    *logrus.Entry

	mu     sync.RWMutex
	cached []Product
	loaded bool

	sfg singleflight.Group
}

func NewService(source Source, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{source: source, log: log}
}

// Products returns the catalog, fetching it on first use. Source failures are
// logged and swallowed: callers get the last good list, or an empty one.
func (s *Service) Products(ctx context.Context) []Product {
	s.mu.RLock()
	if s.loaded {
		out := make([]Product, len(s.cached))
		copy(out, s.cached)
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()
	return s.Refresh(ctx)
}

// Refresh forces a fetch from the source. On failure the previous list is kept.
func (s *Service) Refresh(ctx context.Context) []Product {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		return s.source.Fetch(ctx)
	})
	if err != nil {
		s.log.WithError(err).Warn("catalog fetch failed, serving stale list")
		s.mu.RLock()
		defer s.mu.RUnlock()
		out := make([]Product, len(s.cached))
		copy(out, s.cached)
		return out
	}

	products := v.([]Product)
	s.mu.Lock()
	s.cached = products
	s.loaded = true
	s.mu.Unlock()

	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// Search filters the loaded catalog by name, case-insensitive.
func (s *Service) Search(ctx context.Context, q string) []Product {
	return Filter(s.Products(ctx), q)
}

// Find returns the loaded product with the given id.
func (s *Service) Find(ctx context.Context, id string) (Product, error) {
	for _, p := range s.Products(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}
