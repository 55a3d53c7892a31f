package engine

// lines.go centralises every reply the assistant sends. Edit this file to
// change the assistant's wording.

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/ottoorder/internal/cart"
	"github.com/hammamikhairi/ottoorder/internal/domain"
)

// ── Menu / promotions ────────────────────────────────────────────

// LineMenu lists every category and item in menu order.
func LineMenu(cat *domain.Catalog) string {
	upper := cases.Upper(language.BrazilianPortuguese)
	lines := []string{"Cardapio:"}
	for _, c := range cat.Categories {
		lines = append(lines, fmt.Sprintf("\n%s %s:", categoryEmoji(c.Name), upper.String(c.Name)))
		for _, item := range c.Items {
			desc := ""
			if item.Description != "" {
				desc = " — " + item.Description
			}
			lines = append(lines, fmt.Sprintf("• %s — %s (%s)%s",
				item.ID, item.Name, cart.Money(cart.Price(item.Price)), desc))
		}
	}
	return strings.Join(lines, "\n")
}

func categoryEmoji(name string) string {
	label := strings.ToLower(name)
	switch {
	case strings.Contains(label, "pizza"):
		return "🍕"
	case strings.Contains(label, "bebida"), strings.Contains(label, "drink"), strings.Contains(label, "refri"):
		return "🥤"
	case strings.Contains(label, "sobremesa"), strings.Contains(label, "doce"):
		return "🍰"
	case strings.Contains(label, "combo"):
		return "🎁"
	default:
		return "📋"
	}
}

func LinePromotions(promos []domain.PromotionRule) string {
	if len(promos) == 0 {
		return "No momento nao temos promocoes ativas."
	}
	lines := []string{"Promocoes de hoje:"}
	for _, p := range promos {
		lines = append(lines, "• "+p.Message)
	}
	return strings.Join(lines, "\n")
}

// ── Cart ─────────────────────────────────────────────────────────

func LineAdded(qty int, name string, total decimal.Decimal) string {
	return fmt.Sprintf("Adicionado: %dx %s. Total parcial (com entrega): %s.", qty, name, cart.Money(total))
}

func LineUpsell(item domain.MenuItem) string {
	return fmt.Sprintf("Quer adicionar %s por %s para completar seu pedido?", item.Name, cart.Money(cart.Price(item.Price)))
}

func LineFinishHint() string {
	return "Se quiser finalizar, diga 'finalizar'."
}

func LineNotInCart() string {
	return "Nao encontrei esse item no seu carrinho."
}

func LineCartEmptied() string {
	return "Removi o item. Seu carrinho esta vazio."
}

func LineRemoved(qty int, name string, total decimal.Decimal) string {
	return fmt.Sprintf("Removi %dx %s. Total atual: %s.", qty, name, cart.Money(total))
}

func LineEmptyCartOnFinish() string {
	return "Seu carrinho esta vazio. Escolha um item do cardapio para continuar."
}

// ── Confirmation ─────────────────────────────────────────────────

// LineConfirmPrompt follows every order summary.
func LineConfirmPrompt() string {
	return "Voce confirma? (sim/nao)"
}

func LineSayFinish() string {
	return "Se deseja finalizar, diga 'finalizar' e eu resumo o pedido."
}

func LineBackToOrdering() string {
	return "Sem problemas. Diga o item que deseja adicionar ou remover."
}

func LineConfirmOrEdit() string {
	return "Para finalizar, responda 'sim'. Para mudar o pedido, diga 'editar'."
}

func LineHelp() string {
	return "Consigo te ajudar com o cardapio, adicionar itens ou finalizar o pedido. Diga 'menu' para ver os itens."
}

// ── Customer info ────────────────────────────────────────────────

func LineInfoBeforeConfirm() string {
	return "Antes de confirmar, preciso do seu nome e endereco."
}

func LineBadName() string {
	return "Nao consegui entender seu nome. Pode repetir?"
}

func LineNameThanks() string {
	return "Obrigado! Qual o endereco para entrega?"
}

func LineBadAddress() string {
	return "Endereco invalido. Pode enviar novamente?"
}

func LineAddressSaved() string {
	return "Perfeito! Posso ajudar com mais algum item?"
}

func LineNeedName() string {
	return "Antes de finalizar, preciso do seu nome."
}

func LineNeedAddress() string {
	return "Antes de finalizar, preciso do seu endereco."
}

// ── Finalize ─────────────────────────────────────────────────────

func LineEmptyCartOnConfirm() string {
	return "Seu carrinho esta vazio. Escolha um item do cardapio."
}

func LineAskName() string {
	return "Qual seu nome?"
}

func LineAskAddress() string {
	return "Qual o endereco para entrega?"
}

func LineBadPhone() string {
	return "Telefone invalido. Pode enviar novamente?"
}

func LineOrderConfirmed() string {
	return "Pedido confirmado! Clique no link para enviar via WhatsApp."
}

// ── Opening hours ────────────────────────────────────────────────

// LineClosed is prefixed to replies outside service hours. hours is empty
// when the restaurant does not open today.
func LineClosed(prettyHours string) string {
	if prettyHours == "" {
		return "Estamos fechados agora."
	}
	return fmt.Sprintf("Estamos fechados agora. Nosso horario de hoje e %s.", prettyHours)
}
