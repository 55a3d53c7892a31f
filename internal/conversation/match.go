package conversation

import (
	"strings"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
)

// Match finds the menu item an utterance refers to. text must already be
// normalized. Rules, in order:
//
//  1. the item id appears in text on token boundaries;
//  2. the item name appears in text on token boundaries;
//  3. token overlap: the item whose significant tokens fuzzily match the
//     most utterance tokens, provided it matches at least
//     min(2, len(item tokens)) and beats every other candidate.
func Match(text string, idx catalog.Index) (catalog.IndexedItem, bool) {
	items := idx.Items()

	for _, it := range items {
		if catalog.ContainsPhrase(text, it.IDNorm) {
			return it, true
		}
	}
	for _, it := range items {
		if catalog.ContainsPhrase(text, it.NameNorm) {
			return it, true
		}
	}

	tokens := strings.Fields(text)
	best, second := 0, 0
	var winner catalog.IndexedItem
	for _, it := range items {
		if len(it.Tokens) == 0 {
			continue
		}
		score := overlap(tokens, it.Tokens)
		if score < min(2, len(it.Tokens)) {
			continue
		}
		switch {
		case score > best:
			second = best
			best = score
			winner = it
		case score > second:
			second = score
		}
	}
	if best == 0 || best == second {
		return catalog.IndexedItem{}, false
	}
	return winner, true
}

// overlap counts utterance tokens that match any of the item tokens.
func overlap(tokens, itemTokens []string) int {
	n := 0
	for _, t := range tokens {
		if matchesAny(t, itemTokens) {
			n++
		}
	}
	return n
}

func matchesAny(token string, itemTokens []string) bool {
	for _, it := range itemTokens {
		if TokenMatches(token, it) {
			return true
		}
	}
	return false
}

// TokenMatches is the fuzzy token rule: after singularizing both sides the
// tokens are equal, or the longer one starts with the other and the shorter
// one has more than three letters.
func TokenMatches(token, itemToken string) bool {
	a, b := singularize(token), singularize(itemToken)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if len(a) > 3 && strings.HasPrefix(b, a) {
		return true
	}
	return len(b) > 3 && strings.HasPrefix(a, b)
}

// singularize drops a trailing "s" from tokens longer than three letters.
func singularize(token string) string {
	if len(token) > 3 && strings.HasSuffix(token, "s") {
		return token[:len(token)-1]
	}
	return token
}
