package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// productDTO is the wire shape of a remote catalog entry. Price travels as a
// string to avoid float rounding on the wire.
type productDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock"`
}

// HTTPSource fetches the catalog from a remote products endpoint.
type HTTPSource struct {
	client  *http.Client
	baseURL string
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products", s.baseURL), nil)
	if err != nil {
		return nil, err
	}
	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %s", ErrSourceUnavailable, res.Status)
	}

	var wrap struct {
		Items []productDTO `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&wrap); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrSourceUnavailable, err)
	}

	out := make([]Product, 0, len(wrap.Items))
	for _, d := range wrap.Items {
		// Entries with malformed fields are skipped, not fatal; mirrors the
		// tolerant mapping of document-store catalogs.
		price, err := decimal.NewFromString(d.Price)
		if err != nil || d.Name == "" || d.ID == "" || d.Stock < 0 {
			continue
		}
		out = append(out, Product{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Price:       price,
			ImageURL:    d.ImageURL,
			Stock:       d.Stock,
		})
	}
	return out, nil
}
