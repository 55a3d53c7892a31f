package conversation

import (
	"testing"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
	"github.com/hammamikhairi/ottoorder/internal/domain"
)

func TestTokenMatches(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"calabresa", "calabresa", true},
		{"calabresas", "calabresa", true},
		{"cala", "calabresa", true},
		{"cal", "calabresa", false},
		{"calabresa", "cala", true},
		{"gas", "ga", false},
		{"x", "x", true},
		{"", "x", false},
		{"coca", "cola", false},
	}
	for _, tt := range tests {
		if got := TokenMatches(tt.a, tt.b); got != tt.want {
			t.Errorf("TokenMatches(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSingularize(t *testing.T) {
	tests := map[string]string{
		"pizzas": "pizza",
		"gas":    "gas",
		"dois":   "doi",
		"x":      "x",
	}
	for in, want := range tests {
		if got := singularize(in); got != want {
			t.Errorf("singularize(%q) = %q, want %q", in, got, want)
		}
	}
}

func tieCatalog() *domain.Catalog {
	return &domain.Catalog{
		Categories: []domain.Category{{
			Name: "Lanches",
			Items: []domain.MenuItem{
				{ID: "a1", Name: "Frango Catupiry", Price: 10},
				{ID: "a2", Name: "Frango Cheddar", Price: 11},
				{ID: "a3", Name: "Bacon Cheddar Duplo", Price: 12},
			},
		}},
	}
}

func TestMatchTiers(t *testing.T) {
	idx := catalog.BuildIndex(tieCatalog())

	tests := []struct {
		text   string
		wantID string
		wantOK bool
	}{
		{"a2", "a2", true},
		{"frango cheddar", "a2", true},
		{"frango com catupiry", "a1", true},
		{"bacon e cheddar", "a3", true},
		// "frango" alone hits two items with one token each: below threshold
		{"frango", "", false},
		// both frango items score 2
		{"cheddar com frango e catupiry", "", false},
		// id must sit on token boundaries
		{"a22", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			hit, ok := Match(catalog.Normalize(tt.text), idx)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok=%v, want %v (hit %s)", tt.text, ok, tt.wantOK, hit.Item.ID)
			}
			if ok && hit.Item.ID != tt.wantID {
				t.Fatalf("Match(%q) = %s, want %s", tt.text, hit.Item.ID, tt.wantID)
			}
		})
	}
}
