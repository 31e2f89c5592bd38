package utils

import "unicode"

// remove qualquer coisa que não seja dígito
func SanitizeTaxID(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// Valida só o formato: 11 (CPF) ou 14 (CNPJ) dígitos, e não todos iguais.
// Dígito verificador não é conferido; planilhas antigas trazem CNPJs fora da regra.
func ValidateTaxID(digits string) bool {
	if len(digits) != 11 && len(digits) != 14 {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return true
		}
	}
	return false
}
