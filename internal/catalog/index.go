package catalog

import (
	"strings"

	"github.com/hammamikhairi/ottoorder/internal/domain"
)

// beverageMarkers identify drink categories by substring.
var beverageMarkers = []string{"bebida", "drink", "refri", "refrigerante"}

// IndexedItem is a menu item prepared for matching.
type IndexedItem struct {
	Item     domain.MenuItem
	Category string
	IDNorm   string
	NameNorm string
	Tokens   []string // significant name tokens, generic words removed
}

// Index is the matchable view of a catalog. It is cheap to build and is
// rebuilt for every request.
type Index struct {
	items []IndexedItem
}

// BuildIndex indexes every item of the catalog in menu order.
func BuildIndex(c *domain.Catalog) Index {
	var idx Index
	if c == nil {
		return idx
	}
	idx.items = make([]IndexedItem, 0, c.ItemCount())
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			var tokens []string
			for _, tok := range Tokenize(item.Name) {
				if !IsGeneric(tok) {
					tokens = append(tokens, tok)
				}
			}
			idx.items = append(idx.items, IndexedItem{
				Item:     item,
				Category: cat.Name,
				IDNorm:   Normalize(item.ID),
				NameNorm: Normalize(item.Name),
				Tokens:   tokens,
			})
		}
	}
	return idx
}

// Items returns the indexed items in menu order.
func (x Index) Items() []IndexedItem { return x.items }

// Len returns the number of indexed items.
func (x Index) Len() int { return len(x.items) }

// Lookup finds an indexed item by its raw id.
func (x Index) Lookup(id string) (IndexedItem, bool) {
	for _, it := range x.items {
		if it.Item.ID == id {
			return it, true
		}
	}
	return IndexedItem{}, false
}

// FirstBeverage returns the first item whose category looks like drinks.
func (x Index) FirstBeverage() (IndexedItem, bool) {
	for _, it := range x.items {
		if IsBeverageCategory(it.Category) {
			return it, true
		}
	}
	return IndexedItem{}, false
}

// IsBeverageCategory applies the drink heuristic to a category name.
func IsBeverageCategory(name string) bool {
	label := strings.ToLower(name)
	for _, m := range beverageMarkers {
		if strings.Contains(label, m) {
			return true
		}
	}
	return false
}
