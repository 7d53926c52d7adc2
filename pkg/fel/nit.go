package fel

import (
	"fmt"
	"strings"
	"unicode"
)

// ConsumidorFinal NIT genérico para compradores sin identificación.
const ConsumidorFinal = "CF"

// NormalizeNIT quita guiones, espacios y puntos y pasa a mayúsculas: "1234567-k" -> "1234567K".
func NormalizeNIT(nit string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(nit) {
		if unicode.IsDigit(r) || r == 'K' || unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ComputeNITCheckDigit calcula el dígito verificador (módulo 11 SAT) para el cuerpo del NIT.
// Los pesos van de len(body)+1 a 2 de izquierda a derecha; un resultado de 10 se representa con 'K'.
func ComputeNITCheckDigit(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("fel: NIT vacío")
	}
	var sum int
	weight := len(body) + 1
	for _, r := range body {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("fel: el cuerpo del NIT solo admite dígitos: %q", body)
		}
		sum += int(r-'0') * weight
		weight--
	}
	check := (11 - sum%11) % 11
	if check == 10 {
		return 'K', nil
	}
	return byte('0' + check), nil
}

// ValidateNIT valida un NIT guatemalteco (cuerpo + dígito verificador). "CF" es válido.
func ValidateNIT(nit string) error {
	n := NormalizeNIT(nit)
	if n == ConsumidorFinal {
		return nil
	}
	if len(n) < 2 {
		return fmt.Errorf("fel: NIT demasiado corto: %q", nit)
	}
	body, got := n[:len(n)-1], n[len(n)-1]
	expected, err := ComputeNITCheckDigit(body)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("fel: dígito verificador del NIT inválido: esperado %c, recibido %c", expected, got)
	}
	return nil
}
