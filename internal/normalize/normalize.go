// Package normalize implements the single canonical folding used for both
// query text and trie edge labels during prefix matching: NFKD
// decomposition, mark stripping, lowercasing, then dropping everything that
// is not a letter or a number.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes nonspacing marks (category Mn: the combining accents
// left behind by NFKD decomposition), composed as a transform.Transformer so
// it chains directly with norm.NFKD. Other marks (Mc, Me) are not letters or
// numbers, so String's final filter drops them.
var stripMarks = runes.Remove(runes.In(unicode.Mn))

// String folds s into its canonical match form: NFKD decomposition, mark
// removal, lowercasing, and keeping only letters and digits. It is total and
// idempotent, and returns "" only when s contains no letters or digits.
func String(s string) string {
	decomposed, _, err := transform.String(norm.NFKD, s)
	if err != nil {
		decomposed = s
	}
	stripped, _, err := transform.String(stripMarks, decomposed)
	if err != nil {
		stripped = decomposed
	}
	lower := strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
