package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from a product or category name.
// Latin diacritics are folded to ASCII; anything else that is not a letter
// or digit becomes a hyphen.
//
// Examples:
//   - "Ocular Trap T-Shirt" → "ocular-trap-t-shirt"
//   - "Café Crème" → "cafe-creme"
//   - "  Hello   World! " → "hello-world"
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = foldDiacritics(slug)
	slug = slugRegexp.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
