package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/maxlgn/counterhub/models"
)

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DeriveSlug builds the URL identifier of a defense team from its
// monster names: lowercased, diacritics folded, everything outside
// [a-z0-9] dropped, one hyphen per monster. Order-sensitive by design:
// the same three names in a different order produce a different slug.
func DeriveSlug(monsters models.MonsterList) string {
	parts := make([]string, 0, len(monsters))
	for _, monster := range monsters {
		if part := slugPart(monster.Name); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "-")
}

func slugPart(name string) string {
	folded, _, err := transform.String(stripDiacritics, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
