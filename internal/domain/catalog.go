// Package domain defines the core types and interfaces for the ordering
// assistant. All other packages depend on domain; domain depends on nothing.
package domain

// Catalog is a restaurant's menu and house rules. It is immutable once
// loaded and is shared read-only by every turn of a request.
type Catalog struct {
	Name           string            `json:"name"`
	WhatsAppNumber string            `json:"whatsapp_number"`
	DeliveryFee    float64           `json:"delivery_fee"`
	OpeningHours   map[string]string `json:"opening_hours"` // keyed by lowercase English weekday
	Categories     []Category        `json:"-"`
	Promotions     []PromotionRule   `json:"promotions"`
	UpsellRules    []UpsellRule      `json:"upsell_rules"`
}

// Category groups menu items under a display name. Order is significant.
type Category struct {
	Name  string
	Items []MenuItem
}

// MenuItem is a single orderable entry.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// PromotionRule suggests something when the trigger item is added.
type PromotionRule struct {
	Trigger string `json:"trigger"`
	Suggest string `json:"suggest"`
	Message string `json:"message"`
}

// UpsellRule is a catalog-declared upsell hint.
type UpsellRule struct {
	Condition string `json:"condition"`
	Suggest   string `json:"suggest"`
}

// FindItem returns the item with the given id and the name of its category.
func (c *Catalog) FindItem(id string) (*MenuItem, string, bool) {
	for ci := range c.Categories {
		cat := &c.Categories[ci]
		for ii := range cat.Items {
			if cat.Items[ii].ID == id {
				return &cat.Items[ii], cat.Name, true
			}
		}
	}
	return nil, "", false
}

// ItemCount returns the number of items across all categories.
func (c *Catalog) ItemCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Items)
	}
	return n
}
