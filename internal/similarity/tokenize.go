package similarity

import (
	"strings"
	"unicode"
)

// TokenSet is the set of normalized word tokens of a document.
// Duplicates collapse: repeated words do not increase weight.
type TokenSet map[string]struct{}

// Normalize turns raw text into its canonical token set. The input is
// lower-cased, everything that is not a letter, digit, underscore, or
// whitespace is stripped, and the remainder is split on whitespace runs.
// Empty tokens are discarded, so the empty string yields an empty set.
func Normalize(text string) TokenSet {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	set := make(TokenSet)
	for _, tok := range strings.Fields(b.String()) {
		set[tok] = struct{}{}
	}
	return set
}

// Contains reports whether the set holds the given token.
func (s TokenSet) Contains(tok string) bool {
	_, ok := s[tok]
	return ok
}
