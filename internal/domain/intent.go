package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentShowMenu
	IntentShowPromotions
	IntentFinish
	IntentConfirm
	IntentEdit
	IntentAddItem
	IntentRemoveItem
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentShowMenu:
		return "show_menu"
	case IntentShowPromotions:
		return "show_promotions"
	case IntentFinish:
		return "finish"
	case IntentConfirm:
		return "confirm"
	case IntentEdit:
		return "edit"
	case IntentAddItem:
		return "add_item"
	case IntentRemoveItem:
		return "remove_item"
	default:
		return "unknown"
	}
}

// IsItem reports whether the intent references a menu item.
func (i IntentType) IsItem() bool {
	return i == IntentAddItem || i == IntentRemoveItem
}

// Intent represents the classified meaning of one utterance.
type Intent struct {
	Type     IntentType
	Item     *MenuItem // set for add/remove
	Quantity int       // >= 1 for add/remove
}
