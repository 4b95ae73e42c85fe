package tabular

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// StripAccents removes combining marks after canonical decomposition, so
// "Localização" becomes "Localizacao".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKey turns a column label into a field key: lower case, accents
// stripped, runs of other characters collapsed to '_' and trimmed.
// "Valor de Aquisição" becomes "valor_de_aquisicao".
func NormalizeKey(label string) string {
	k := strings.ToLower(StripAccents(strings.TrimSpace(label)))
	k = nonAlnum.ReplaceAllString(k, "_")
	return strings.Trim(k, "_")
}
