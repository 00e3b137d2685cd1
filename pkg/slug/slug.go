package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name. Accented
// letters lose their marks; any run of other characters becomes one hyphen.
//
// Examples:
//   - "Kemeja Kasual Premium" → "kemeja-kasual-premium"
//   - "Sepatu Café Crème" → "sepatu-cafe-creme"
//   - "Tas  Kulit (Asli)!" → "tas-kulit-asli"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
