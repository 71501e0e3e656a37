package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func sampleProducts() []Product {
	return []Product{
		{ID: "1", Name: "Capuchino frío", Price: decimal.RequireFromString("6.50"), Stock: 10},
		{ID: "4", Name: "Granizado", Price: decimal.RequireFromString("4.00"), Stock: 5},
	}
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	got := Filter(sampleProducts(), "gran")
	if len(got) != 1 || got[0].Name != "Granizado" {
		t.Fatalf("filter 'gran' = %+v, expected only Granizado", got)
	}

	got = Filter(sampleProducts(), "GRAN")
	if len(got) != 1 || got[0].Name != "Granizado" {
		t.Fatalf("filter should ignore case, got %+v", got)
	}
}

func TestFilter_BlankQueryReturnsAll(t *testing.T) {
	in := sampleProducts()
	if got := Filter(in, ""); len(got) != len(in) {
		t.Fatalf("blank query: got %d products, expected %d", len(got), len(in))
	}
	if got := Filter(in, "   "); len(got) != len(in) {
		t.Fatalf("whitespace query: got %d products, expected %d", len(got), len(in))
	}
}

func TestFilter_NoMatches(t *testing.T) {
	if got := Filter(sampleProducts(), "pizza"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}
