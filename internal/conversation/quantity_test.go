package conversation

import (
	"testing"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
	"github.com/hammamikhairi/ottoorder/internal/domain"
)

func TestExtractQuantity(t *testing.T) {
	idx := catalog.BuildIndex(&domain.Catalog{
		Categories: []domain.Category{{
			Name: "Pizzas",
			Items: []domain.MenuItem{
				{ID: "quatro_queijos", Name: "Pizza Quatro Queijos", Price: 50},
				{ID: "margherita", Name: "Margherita", Price: 45},
			},
		}},
	})
	queijos, _ := idx.Lookup("quatro_queijos")
	margherita, _ := idx.Lookup("margherita")

	tests := []struct {
		text string
		hit  catalog.IndexedItem
		want int
	}{
		{"2 pizzas margherita", margherita, 2},
		{"duas pizzas margherita", margherita, 2},
		{"dois margherita", margherita, 2},
		{"pizza margherita", margherita, 1},
		{"margherita 2x", margherita, 2},
		{"margherita 2 x", margherita, 2},
		{"margherita e mais cinco", margherita, 5},
		{"quatro queijos", queijos, 1},
		{"2 quatro queijos", queijos, 2},
		{"uma quatro queijos", queijos, 1},
		{"margherita para rua 1500", margherita, 1},
		{"", margherita, 1},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ExtractQuantity(catalog.Normalize(tt.text), tt.hit)
			if got != tt.want {
				t.Errorf("ExtractQuantity(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
