package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// centsMarker es el sufijo que se agrega a los montos sin centavos (convención FactoNet).
const centsMarker = ",oo"

// FormatCurrency formatea amount como peso colombiano: "$" + miles separados por punto.
// Los montos enteros terminan en ",oo"; si hay centavos se escriben redondeados a dos
// dígitos en lugar del marcador.
//
//	1190000   → "$1.190.000,oo"
//	15300.75  → "$15.300,75"
func FormatCurrency(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("%w: %s es negativo", ErrInvalidAmount, amount.String())
	}
	rounded := amount.Round(2)
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Shift(2).IntPart()

	var b strings.Builder
	b.WriteString("$")
	b.WriteString(GroupThousands(whole.String()))
	if cents == 0 {
		b.WriteString(centsMarker)
	} else {
		fmt.Fprintf(&b, ",%02d", cents)
	}
	return b.String(), nil
}

// MustFormatCurrency es FormatCurrency para montos ya validados; los negativos se
// formatean con signo delante.
func MustFormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		s, _ := FormatCurrency(amount.Neg())
		return "-" + s
	}
	s, _ := FormatCurrency(amount)
	return s
}

// GroupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func GroupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
