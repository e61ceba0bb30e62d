package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name normaliza un nombre para comparación exacta tolerante a mayúsculas y
// acentos: "Sucursal Norte " y "sucursal norté" producen la misma clave.
// Se usa al guardar (columna name_norm) y al resolver contrapartes.
func Name(s string) string {
	clean, _, err := transform.String(stripAccents, s)
	if err != nil {
		clean = s
	}
	return strings.ToLower(strings.Join(strings.Fields(clean), " "))
}
