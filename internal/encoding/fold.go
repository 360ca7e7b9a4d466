package encoding

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold reduces s to a matching key: accents stripped, case folded, inner
// whitespace collapsed. "  Fecha  Emisión " and "fecha emision" share a key.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	return strings.Join(strings.Fields(cases.Fold().String(plain)), " ")
}
