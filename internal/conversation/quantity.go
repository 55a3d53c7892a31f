package conversation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
)

// numberWords maps Portuguese number words, both genders, to values.
var numberWords = map[string]int{
	"um": 1, "uma": 1,
	"dois": 2, "duas": 2,
	"tres":   3,
	"quatro": 4,
	"cinco":  5,
	"seis":   6,
	"sete":   7,
	"oito":   8,
	"nove":   9,
	"dez":    10,
	"onze":   11,
	"doze":   12,
}

// timesPattern catches "2x" and "2 x".
var timesPattern = regexp.MustCompile(`\b(\d+)\s*x\b`)

// maxQuantityDigits bounds numeric tokens read as quantities. Longer runs
// are phone numbers or street numbers.
const maxQuantityDigits = 3

// ExtractQuantity finds how many units of the matched item the normalized
// text asks for. It prefers a number within the two tokens before the
// item reference, then an "N x" marker, then any number in the text that
// is not part of the item reference. The result is at least 1.
func ExtractQuantity(text string, hit catalog.IndexedItem) int {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return 1
	}

	itemTokens := append([]string(nil), hit.Tokens...)
	itemTokens = append(itemTokens, strings.Fields(hit.IDNorm)...)

	at := -1
	for i, tok := range tokens {
		if matchesAny(tok, itemTokens) {
			at = i
			break
		}
	}
	if at >= 0 {
		if q, ok := firstQuantity(tokens[max(0, at-2):at]); ok {
			return q
		}
	}

	if m := timesPattern.FindStringSubmatch(text); m != nil {
		if q, ok := digitsQuantity(m[1]); ok {
			return q
		}
	}

	var rest []string
	for _, tok := range tokens {
		if !matchesAny(tok, itemTokens) {
			rest = append(rest, tok)
		}
	}
	if q, ok := firstQuantity(rest); ok {
		return q
	}
	return 1
}

func firstQuantity(tokens []string) (int, bool) {
	for _, tok := range tokens {
		if q, ok := tokenQuantity(tok); ok {
			return q, true
		}
	}
	return 0, false
}

// tokenQuantity reads a digit run or a number word. Words are looked up
// as written first so "dois" is not mistaken for a plural.
func tokenQuantity(tok string) (int, bool) {
	if q, ok := digitsQuantity(tok); ok {
		return q, true
	}
	if q, ok := numberWords[tok]; ok {
		return q, true
	}
	if q, ok := numberWords[singularize(tok)]; ok {
		return q, true
	}
	return 0, false
}

func digitsQuantity(tok string) (int, bool) {
	if tok == "" || len(tok) > maxQuantityDigits {
		return 0, false
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return max(n, 1), true
}
