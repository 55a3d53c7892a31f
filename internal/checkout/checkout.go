// Package checkout renders a confirmed order into the handoff message sent
// to the restaurant and the link that opens it in WhatsApp.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hammamikhairi/ottoorder/internal/cart"
	"github.com/hammamikhairi/ottoorder/internal/domain"
)

// linkBase is the click-to-chat URL prefix. The contact number follows it.
const linkBase = "https://wa.me/"

// Message builds the line-oriented order message. Customer fields appear
// only when set.
func Message(cat *domain.Catalog, lines []cart.Line, info domain.CustomerInfo) string {
	out := []string{"Pedido - " + cat.Name}

	optional := []struct{ label, value string }{
		{"Cliente", info.Name},
		{"Telefone", info.Phone},
		{"Endereco", info.Address},
		{"Pagamento", info.PaymentMethod},
	}
	for _, f := range optional {
		if f.value != "" {
			out = append(out, f.label+": "+f.value)
		}
	}

	out = append(out, "Itens:")
	subtotal := decimal.Zero
	for _, l := range lines {
		out = append(out, fmt.Sprintf("%dx %s (%s) = %s",
			l.Quantity, l.Item.Name, cart.Money(l.UnitPrice()), cart.Money(l.Subtotal())))
		subtotal = subtotal.Add(l.Subtotal())
	}

	fee := cart.Price(cat.DeliveryFee)
	out = append(out,
		"Taxa de entrega: "+cart.Money(fee),
		"Total: "+cart.Money(subtotal.Add(fee)),
	)

	if info.Notes != "" {
		out = append(out, "Observacoes: "+info.Notes)
	}
	return strings.Join(out, "\n")
}

// Link returns the click-to-chat URL for contact with message pre-filled.
// Spaces are encoded as %20.
func Link(contact, message string) string {
	contact = strings.TrimPrefix(strings.TrimSpace(contact), "+")
	return linkBase + contact + "?text=" + Encode(message)
}

// Encode percent-encodes s for use as a query value.
func Encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
