// Package conversation turns free-text utterances into intents and
// delivers replies to the user.
package conversation

import (
	"strings"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
	"github.com/hammamikhairi/ottoorder/internal/domain"
	"github.com/hammamikhairi/ottoorder/internal/logger"
)

// Recognizer classifies one utterance against a catalog index.
type Recognizer interface {
	Recognize(utterance string, idx catalog.Index) domain.Intent
}

// Compile-time interface check.
var _ Recognizer = (*KeywordRecognizer)(nil)

// KeywordRecognizer matches utterances to intents using keyword rules
// and the fuzzy item matcher. It holds no per-conversation state.
type KeywordRecognizer struct {
	log   *logger.Logger
	rules []patternRule
}

// patternRule pairs a predicate over normalized tokens with the intent it
// yields. Rules are evaluated in order and the first hit wins.
type patternRule struct {
	match  func(tokens []string) bool
	intent domain.IntentType
}

// removeKeywords turn an item reference into a removal.
var removeKeywords = wordSet("remover", "tirar", "excluir", "deletar")

// NewKeywordRecognizer creates the rule-based recognizer.
func NewKeywordRecognizer(log *logger.Logger) *KeywordRecognizer {
	r := &KeywordRecognizer{log: log}
	r.rules = []patternRule{
		{anyWord("menu", "cardapio"), domain.IntentShowMenu},
		{anyWord("promo", "promocao", "promocoes"), domain.IntentShowPromotions},
		{anyWord("finalizar", "fechar", "encerrar", "checkout"), domain.IntentFinish},
		{anyWord("sim", "confirmar", "confirmo", "ok", "pode"), domain.IntentConfirm},
		{anyWord("editar", "mudar", "alterar", "nao", "cancelar", "voltar"), domain.IntentEdit},
	}
	return r
}

// Recognize converts an utterance into an intent. Command keywords take
// priority over item references.
func (r *KeywordRecognizer) Recognize(utterance string, idx catalog.Index) domain.Intent {
	text := catalog.Normalize(utterance)
	if text == "" {
		return domain.Intent{Type: domain.IntentUnknown}
	}
	tokens := strings.Fields(text)

	for _, rule := range r.rules {
		if rule.match(tokens) {
			r.log.Debug("matched command: %s", rule.intent)
			return domain.Intent{Type: rule.intent}
		}
	}

	hit, ok := Match(text, idx)
	if !ok {
		r.log.Debug("no match for %q", text)
		return domain.Intent{Type: domain.IntentUnknown}
	}

	item := hit.Item
	intent := domain.Intent{
		Type:     domain.IntentAddItem,
		Item:     &item,
		Quantity: ExtractQuantity(text, hit),
	}
	if containsAny(tokens, removeKeywords) {
		intent.Type = domain.IntentRemoveItem
	}
	r.log.Debug("matched item %s qty=%d (%s)", item.ID, intent.Quantity, intent.Type)
	return intent
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func anyWord(words ...string) func([]string) bool {
	set := wordSet(words...)
	return func(tokens []string) bool { return containsAny(tokens, set) }
}

// containsAny reports whether a token, or its singular, is in set.
func containsAny(tokens []string, set map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			return true
		}
		if _, ok := set[singularize(t)]; ok {
			return true
		}
	}
	return false
}
