package fatturapa

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeVAT limpia una partita IVA: quita espacios, puntos y el prefijo de país "IT".
// Para identificativos extranjeros (otro prefijo) solo se quitan separadores y se pasa a mayúsculas.
func NormalizeVAT(vat string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(vat) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if strings.HasPrefix(out, "IT") && len(out) == 13 {
		out = out[2:]
	}
	return out
}

// ValidatePartitaIVA valida una partita IVA italiana de 11 dígitos con el dígito de control
// (algoritmo tipo Luhn: posiciones pares se duplican y se resta 9 si superan 9).
func ValidatePartitaIVA(vat string) error {
	v := NormalizeVAT(vat)
	if len(v) != 11 {
		return fmt.Errorf("fatturapa: la partita IVA debe tener 11 dígitos, se recibieron %d", len(v))
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return fmt.Errorf("fatturapa: la partita IVA solo admite dígitos")
		}
	}
	expected := checkDigit(v[:10])
	if v[10] != expected {
		return fmt.Errorf("fatturapa: dígito de control inválido: esperado %c, recibido %c", expected, v[10])
	}
	return nil
}

func checkDigit(base string) byte {
	sum := 0
	for i := 0; i < len(base); i++ {
		d := int(base[i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}
