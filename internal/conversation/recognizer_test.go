package conversation

import (
	"testing"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
	"github.com/hammamikhairi/ottoorder/internal/domain"
	"github.com/hammamikhairi/ottoorder/internal/logger"
)

func loadIndex(t *testing.T) catalog.Index {
	t.Helper()
	cat, err := catalog.Load("../catalog/testdata/pizzaria.json")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog.BuildIndex(cat)
}

func TestKeywordRecognizer(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	r := NewKeywordRecognizer(log)
	idx := loadIndex(t)

	tests := []struct {
		input    string
		wantType domain.IntentType
		wantItem string
		wantQty  int
	}{
		// Commands
		{"menu", domain.IntentShowMenu, "", 0},
		{"Quero ver o CARDÁPIO", domain.IntentShowMenu, "", 0},
		{"tem promoção?", domain.IntentShowPromotions, "", 0},
		{"promocoes", domain.IntentShowPromotions, "", 0},
		{"me mostra as promos", domain.IntentShowPromotions, "", 0},
		{"quero ver os menus", domain.IntentShowMenu, "", 0},
		{"finalizar", domain.IntentFinish, "", 0},
		{"pode fechar", domain.IntentFinish, "", 0},
		{"sim", domain.IntentConfirm, "", 0},
		{"OK!", domain.IntentConfirm, "", 0},
		{"não", domain.IntentEdit, "", 0},
		{"quero editar", domain.IntentEdit, "", 0},

		// Commands beat item references
		{"cardapio de calabresa", domain.IntentShowMenu, "", 0},
		{"finalizar com margherita", domain.IntentFinish, "", 0},

		// Keywords match whole tokens only
		{"simone", domain.IntentUnknown, "", 0},
		{"okra", domain.IntentUnknown, "", 0},

		// Item by id
		{"margherita", domain.IntentAddItem, "margherita", 1},
		{"coca_lata", domain.IntentAddItem, "coca_lata", 1},

		// Item by name
		{"Quero uma Coca-Cola Lata", domain.IntentAddItem, "coca_lata", 1},
		{"quatro queijos", domain.IntentAddItem, "quatro_queijos", 1},

		// Token overlap
		{"2 calabresas", domain.IntentAddItem, "calabresa", 2},
		{"suco de laranja", domain.IntentAddItem, "suco_laranja", 1},

		// Quantities
		{"2 pizzas margherita", domain.IntentAddItem, "margherita", 2},
		{"duas pizzas margherita", domain.IntentAddItem, "margherita", 2},
		{"pizza margherita", domain.IntentAddItem, "margherita", 1},
		{"margherita 3x", domain.IntentAddItem, "margherita", 3},
		{"margherita, tres por favor", domain.IntentAddItem, "margherita", 3},
		{"0 margherita", domain.IntentAddItem, "margherita", 1},

		// Removal
		{"remover calabresa", domain.IntentRemoveItem, "calabresa", 1},
		{"tirar 2 pudim", domain.IntentRemoveItem, "pudim", 2},

		// Unknown
		{"", domain.IntentUnknown, "", 0},
		{"bom dia", domain.IntentUnknown, "", 0},
		{"remover", domain.IntentUnknown, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := r.Recognize(tt.input, idx)
			if got.Type != tt.wantType {
				t.Fatalf("input=%q: got type %s, want %s", tt.input, got.Type, tt.wantType)
			}
			if !got.Type.IsItem() {
				if got.Item != nil {
					t.Errorf("input=%q: command intent carries item %s", tt.input, got.Item.ID)
				}
				return
			}
			if got.Item == nil || got.Item.ID != tt.wantItem {
				t.Fatalf("input=%q: got item %+v, want %s", tt.input, got.Item, tt.wantItem)
			}
			if got.Quantity != tt.wantQty {
				t.Errorf("input=%q: got qty %d, want %d", tt.input, got.Quantity, tt.wantQty)
			}
		})
	}
}

func TestRecognizeEmptyIndex(t *testing.T) {
	r := NewKeywordRecognizer(logger.New(logger.LevelOff, nil))
	got := r.Recognize("margherita", catalog.BuildIndex(&domain.Catalog{}))
	if got.Type != domain.IntentUnknown {
		t.Fatalf("expected unknown, got %s", got.Type)
	}
}
