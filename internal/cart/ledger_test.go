package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottoorder/internal/domain"
)

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Name:        "Teste",
		DeliveryFee: 7.5,
		Categories: []domain.Category{
			{Name: "Pizzas", Items: []domain.MenuItem{
				{ID: "margherita", Name: "Pizza Margherita", Price: 45},
				{ID: "quatro_queijos", Name: "Pizza Quatro Queijos", Price: 52.5},
			}},
			{Name: "Refrigerantes", Items: []domain.MenuItem{
				{ID: "coca", Name: "Coca-Cola", Price: 6.1},
			}},
		},
	}
}

func TestAddMerges(t *testing.T) {
	var entries []domain.CartEntry
	l := New(testCatalog(), &entries)

	l.Add("margherita", 2)
	l.Add("coca", 1)
	l.Add("margherita", 2)

	require.Len(t, entries, 2)
	assert.Equal(t, domain.CartEntry{ID: "margherita", Quantity: 4}, entries[0])
	assert.Equal(t, domain.CartEntry{ID: "coca", Quantity: 1}, entries[1])
}

func TestAddClampsQuantity(t *testing.T) {
	var entries []domain.CartEntry
	l := New(testCatalog(), &entries)

	l.Add("coca", 0)
	l.Add("coca", -3)

	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Quantity)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name      string
		start     []domain.CartEntry
		id        string
		qty       int
		wantFound bool
		want      []domain.CartEntry
	}{
		{
			name:      "partial",
			start:     []domain.CartEntry{{ID: "margherita", Quantity: 3}},
			id:        "margherita",
			qty:       2,
			wantFound: true,
			want:      []domain.CartEntry{{ID: "margherita", Quantity: 1}},
		},
		{
			name:      "exact drops entry",
			start:     []domain.CartEntry{{ID: "margherita", Quantity: 2}, {ID: "coca", Quantity: 1}},
			id:        "margherita",
			qty:       2,
			wantFound: true,
			want:      []domain.CartEntry{{ID: "coca", Quantity: 1}},
		},
		{
			name:      "more than held drops entry",
			start:     []domain.CartEntry{{ID: "coca", Quantity: 1}},
			id:        "coca",
			qty:       5,
			wantFound: true,
			want:      []domain.CartEntry{},
		},
		{
			name:      "missing is a no-op",
			start:     []domain.CartEntry{{ID: "coca", Quantity: 1}},
			id:        "margherita",
			qty:       1,
			wantFound: false,
			want:      []domain.CartEntry{{ID: "coca", Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := append([]domain.CartEntry{}, tt.start...)
			l := New(testCatalog(), &entries)

			assert.Equal(t, tt.wantFound, l.Remove(tt.id, tt.qty))
			assert.Equal(t, tt.want, entries)
		})
	}
}

func TestTotals(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		name    string
		entries []domain.CartEntry
		want    string
	}{
		{"empty cart is the fee", nil, "7.50"},
		{"single", []domain.CartEntry{{ID: "margherita", Quantity: 1}}, "52.50"},
		{"mixed", []domain.CartEntry{{ID: "quatro_queijos", Quantity: 2}, {ID: "coca", Quantity: 3}}, "130.80"},
		{"stale id skipped", []domain.CartEntry{{ID: "gone", Quantity: 4}, {ID: "coca", Quantity: 1}}, "13.60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := tt.entries
			l := New(cat, &entries)
			assert.Equal(t, tt.want, l.Total().StringFixed(2))

			sum := decimal.Zero
			for _, line := range l.Lines() {
				sum = sum.Add(Price(line.Item.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
			}
			assert.True(t, l.Total().Equal(sum.Add(Price(cat.DeliveryFee))))
		})
	}
}

func TestSummary(t *testing.T) {
	entries := []domain.CartEntry{{ID: "margherita", Quantity: 2}, {ID: "gone", Quantity: 1}}
	l := New(testCatalog(), &entries)

	want := "Resumo do pedido:\n" +
		"• 2x Pizza Margherita — R$ 90.00\n" +
		"Taxa de entrega: R$ 7.50\n" +
		"Total: R$ 97.50"
	assert.Equal(t, want, l.Summary())
}

func TestHasBeverageCategory(t *testing.T) {
	entries := []domain.CartEntry{{ID: "margherita", Quantity: 1}}
	l := New(testCatalog(), &entries)
	assert.False(t, l.HasBeverageCategory())

	l.Add("coca", 1)
	assert.True(t, l.HasBeverageCategory())
}

func TestHasItems(t *testing.T) {
	var entries []domain.CartEntry
	l := New(testCatalog(), &entries)
	assert.False(t, l.HasItems())

	l.Add("gone", 1)
	assert.True(t, l.HasItems(), "stale entries still count as cart content")
}
