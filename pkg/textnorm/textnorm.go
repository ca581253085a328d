// Package textnorm genera claves de búsqueda sin acentos ni mayúsculas
// ("Empanada de Carne Picante" y "empanada carne picánte" comparten prefijos).
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchKey normaliza s: quita diacríticos, pasa a minúsculas y colapsa espacios.
func SearchKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
