package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// genericTokens are words that say nothing about which item is meant.
var genericTokens = map[string]struct{}{
	"pizza": {}, "pizzas": {},
	"bebida": {}, "bebidas": {},
	"lanche": {}, "lanches": {},
	"combo": {}, "combos": {},
	"sabor": {}, "sabores": {},
	"tamanho": {},
	"media":   {},
	"grande":  {},
}

// StripAccents removes combining marks after canonical decomposition,
// so "cardápio" becomes "cardapio".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases s, strips accents and collapses every run of
// characters outside [a-z0-9] into a single space.
func Normalize(s string) string {
	s = StripAccents(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(s))
	gap := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if gap && b.Len() > 0 {
				b.WriteByte(' ')
			}
			gap = false
			b.WriteRune(r)
			continue
		}
		gap = true
	}
	return b.String()
}

// Tokenize normalizes s and splits it on whitespace.
func Tokenize(s string) []string {
	return strings.Fields(Normalize(s))
}

// IsGeneric reports whether a normalized token is in the generic word set.
func IsGeneric(token string) bool {
	_, ok := genericTokens[token]
	return ok
}

// ContainsPhrase reports whether phrase occurs in text on token
// boundaries. Both arguments must already be normalized.
func ContainsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}
