package checkout

import (
	"net/url"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottoorder/internal/cart"
	"github.com/hammamikhairi/ottoorder/internal/domain"
)

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Name:           "Pizzaria Bella",
		WhatsAppNumber: "5511999990000",
		DeliveryFee:    7.5,
		Categories: []domain.Category{
			{Name: "Pizzas", Items: []domain.MenuItem{
				{ID: "calabresa", Name: "Pizza Calabresa", Price: 48},
			}},
			{Name: "Bebidas", Items: []domain.MenuItem{
				{ID: "coca_lata", Name: "Coca-Cola Lata", Price: 6},
			}},
		},
	}
}

func TestMessageGolden(t *testing.T) {
	cat := testCatalog()
	entries := []domain.CartEntry{{ID: "calabresa", Quantity: 2}, {ID: "coca_lata", Quantity: 1}}
	info := domain.CustomerInfo{
		Name:          "Joao Silva",
		Phone:         "11987654321",
		Address:       "Rua A, 123",
		PaymentMethod: "pix",
		Notes:         "sem cebola",
	}

	msg := Message(cat, cart.New(cat, &entries).Lines(), info)

	g := goldie.New(t)
	g.Assert(t, "full_order", []byte(msg+"\n"))
}

func TestMessageOmitsMissingFields(t *testing.T) {
	cat := testCatalog()
	entries := []domain.CartEntry{{ID: "coca_lata", Quantity: 3}}

	msg := Message(cat, cart.New(cat, &entries).Lines(), domain.CustomerInfo{Name: "Ana"})

	assert.Equal(t, "Pedido - Pizzaria Bella\n"+
		"Cliente: Ana\n"+
		"Itens:\n"+
		"3x Coca-Cola Lata (R$ 6.00) = R$ 18.00\n"+
		"Taxa de entrega: R$ 7.50\n"+
		"Total: R$ 25.50", msg)
}

func TestMessageTotalMatchesLedger(t *testing.T) {
	cat := testCatalog()
	entries := []domain.CartEntry{{ID: "calabresa", Quantity: 1}, {ID: "stale", Quantity: 9}}
	l := cart.New(cat, &entries)

	msg := Message(cat, l.Lines(), domain.CustomerInfo{})
	assert.Contains(t, msg, "Total: "+cart.Money(l.Total()))
	assert.NotContains(t, msg, "stale")
}

func TestLink(t *testing.T) {
	link := Link("+5511999990000", "Pedido - Bella\nTotal: R$ 1.00 & 50%")

	assert.Equal(t,
		"https://wa.me/5511999990000?text=Pedido%20-%20Bella%0ATotal%3A%20R%24%201.00%20%26%2050%25",
		link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Pedido - Bella\nTotal: R$ 1.00 & 50%", u.Query().Get("text"))
}

func TestEncodeKeepsLiteralPlus(t *testing.T) {
	assert.Equal(t, "1%2B1%20%3D%202", Encode("1+1 = 2"))
}
