package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBRL interpreta valores como "R$ 1.234,56", "1234,56", "1234.56" ou "R$ 1.500".
// O último separador decide o formato; sem vírgula, ponto seguido de exatamente
// três dígitos é milhar. Retorna ok=false se não der para ler.
func ParseBRL(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return decimal.Zero, false
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastComma > lastDot:
		// 1.234,56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case lastComma >= 0:
		// 1,234.56
		s = strings.ReplaceAll(s, ",", "")
	case lastDot >= 0 && thousandsDots(s):
		// 1.500 e 1.234.567
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// thousandsDots: há dígito antes do primeiro ponto e todo ponto é seguido de três dígitos.
func thousandsDots(s string) bool {
	parts := strings.Split(s, ".")
	if strings.TrimPrefix(parts[0], "-") == "" {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 || strings.Trim(p, "0123456789") != "" {
			return false
		}
	}
	return true
}

// FormatBRL formata em reais com separador de milhar: "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
