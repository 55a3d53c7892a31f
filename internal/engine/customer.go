package engine

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
)

var (
	nonDigits      = regexp.MustCompile(`\D+`)
	namePattern    = regexp.MustCompile(`\b(?:meu nome e|me chamo|sou)\s+(.+)`)
	addressPattern = regexp.MustCompile(`(?i)\bendere(?:c|ç)o\s*(?:e\b|é|:)?\s+(.+)`)
)

const (
	minNameLen    = 2
	minAddressLen = 6
)

// normalizePhone keeps the digits of s when there are 10 to 13 of them.
func normalizePhone(s string) (string, bool) {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) < 10 || len(digits) > 13 {
		return "", false
	}
	return digits, true
}

// extractName pulls the name out of "meu nome e X", "me chamo X" or
// "sou X", title-cased. Otherwise the whole message is the name.
func extractName(message string) string {
	if m := namePattern.FindStringSubmatch(catalog.Normalize(message)); m != nil {
		return cases.Title(language.BrazilianPortuguese).String(strings.TrimSpace(m[1]))
	}
	return strings.TrimSpace(message)
}

// extractAddress pulls the address out of "endereco e X" or
// "endereco: X". Otherwise the whole message is the address.
func extractAddress(message string) string {
	if m := addressPattern.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(message)
}

func validName(name string) bool {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLen {
		return false
	}
	return strings.IndexFunc(name, unicode.IsLetter) >= 0
}

func validAddress(address string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(address)) >= minAddressLen
}
