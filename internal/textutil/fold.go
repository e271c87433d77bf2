package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lower-cases s and strips diacritics ("Annulé" -> "annulé" -> "annule").
// Used for every search/status/vendeur comparison so that accents and case
// never affect matching.
func Fold(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		// transform only fails on malformed UTF-8; fall back to the raw string
		out = s
	}
	return strings.ToLower(out)
}

// FoldTrim is Fold plus surrounding-whitespace removal.
func FoldTrim(s string) string { return strings.TrimSpace(Fold(s)) }

// SplitVendeurs splits the composite salesperson field ("Payet/Rivet") into
// normalized names. Empty segments are dropped.
func SplitVendeurs(vendeur string) []string {
	parts := strings.Split(vendeur, "/")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := FoldTrim(p); n != "" {
			names = append(names, n)
		}
	}
	return names
}
