// Package textnorm normaliza texto para búsquedas insensibles a tildes
// ("azúcar" y "azucar" deben encontrar el mismo lote).
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize elimina marcas diacríticas y pasa a minúsculas.
// Si la transformación falla devuelve el original en minúsculas.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
