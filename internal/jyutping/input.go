package jyutping

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Tokenize splits free text into lowercase syllables. Full-width letters
// and digits are folded to ASCII first, so "ｓａｐ６" yields "sap6".
// Anything other than ASCII letters and digits separates syllables.
func Tokenize(text string) []string {
	folded := strings.ToLower(width.Fold.String(text))
	return strings.FieldsFunc(folded, func(r rune) bool {
		return r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
}
