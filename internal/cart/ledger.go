// Package cart mutates the cart portion of a conversation state and
// prices it against a catalog.
package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
	"github.com/hammamikhairi/ottoorder/internal/domain"
)

// Line is a cart entry resolved against the catalog.
type Line struct {
	Item     domain.MenuItem
	Category string
	Quantity int
}

// UnitPrice returns the item price as a decimal.
func (l Line) UnitPrice() decimal.Decimal { return Price(l.Item.Price) }

// Subtotal returns unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ledger operates on a cart slice owned by the caller. Entries whose id is
// no longer in the catalog are kept but ignored by every read.
type Ledger struct {
	cat     *domain.Catalog
	entries *[]domain.CartEntry
}

// New wraps entries. The slice is modified in place.
func New(cat *domain.Catalog, entries *[]domain.CartEntry) *Ledger {
	if entries == nil {
		entries = &[]domain.CartEntry{}
	}
	return &Ledger{cat: cat, entries: entries}
}

// Add merges qty units of id into the cart, appending a new entry when id
// is not there yet.
func (l *Ledger) Add(id string, qty int) {
	qty = max(qty, 1)
	for i := range *l.entries {
		if (*l.entries)[i].ID == id {
			(*l.entries)[i].Quantity += qty
			return
		}
	}
	*l.entries = append(*l.entries, domain.CartEntry{ID: id, Quantity: qty})
}

// Remove takes qty units of id out of the cart, dropping the entry when
// nothing is left. It reports whether id was in the cart.
func (l *Ledger) Remove(id string, qty int) bool {
	qty = max(qty, 1)
	for i, e := range *l.entries {
		if e.ID != id {
			continue
		}
		if qty >= e.Quantity {
			*l.entries = append((*l.entries)[:i], (*l.entries)[i+1:]...)
		} else {
			(*l.entries)[i].Quantity -= qty
		}
		return true
	}
	return false
}

// HasItems reports whether the cart holds any entry.
func (l *Ledger) HasItems() bool {
	for _, e := range *l.entries {
		if e.ID != "" {
			return true
		}
	}
	return false
}

// Lines resolves the cart against the catalog in cart order.
func (l *Ledger) Lines() []Line {
	var out []Line
	for _, e := range *l.entries {
		if e.ID == "" {
			continue
		}
		item, category, ok := l.cat.FindItem(e.ID)
		if !ok {
			continue
		}
		out = append(out, Line{Item: *item, Category: category, Quantity: max(e.Quantity, 1)})
	}
	return out
}

// Subtotal sums the resolvable lines.
func (l *Ledger) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range l.Lines() {
		sum = sum.Add(line.Subtotal())
	}
	return sum
}

// DeliveryFee returns the catalog's flat fee.
func (l *Ledger) DeliveryFee() decimal.Decimal { return Price(l.cat.DeliveryFee) }

// Total is the subtotal plus the delivery fee. An empty cart costs the fee.
func (l *Ledger) Total() decimal.Decimal {
	return l.Subtotal().Add(l.DeliveryFee())
}

// Summary renders the itemized breakdown shown before confirmation.
func (l *Ledger) Summary() string {
	lines := []string{"Resumo do pedido:"}
	for _, line := range l.Lines() {
		lines = append(lines, fmt.Sprintf("• %dx %s — %s", line.Quantity, line.Item.Name, Money(line.Subtotal())))
	}
	lines = append(lines,
		"Taxa de entrega: "+Money(l.DeliveryFee()),
		"Total: "+Money(l.Total()),
	)
	return strings.Join(lines, "\n")
}

// HasBeverageCategory reports whether any cart item sits in a drinks
// category.
func (l *Ledger) HasBeverageCategory() bool {
	for _, line := range l.Lines() {
		if catalog.IsBeverageCategory(line.Category) {
			return true
		}
	}
	return false
}

// Price converts a catalog price to a decimal.
func Price(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// Money renders an amount as "R$ 12.50".
func Money(d decimal.Decimal) string { return "R$ " + d.StringFixed(2) }
