// Package money formatea montos en pesos colombianos: moneda con separador de miles
// es-CO y monto en letras para los documentos (contratos y facturas).
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount se retorna para montos negativos o fuera del rango soportado.
var ErrInvalidAmount = errors.New("monto inválido")

// maxWords es el mayor entero que NumberToWords sabe escribir (999.999.999.999).
var maxWords = decimal.New(999_999_999_999, 0)

var (
	units = [...]string{"", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve"}
	teens = [...]string{"diez", "once", "doce", "trece", "catorce", "quince",
		"dieciséis", "diecisiete", "dieciocho", "diecinueve"}
	tens     = [...]string{"", "", "veinte", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa"}
	hundreds = [...]string{"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
		"seiscientos", "setecientos", "ochocientos", "novecientos"}
)

// NumberToWords convierte la parte entera de amount a letras en español, en minúscula
// y con una sola separación entre palabras.
//
//	0         → "cero"
//	100       → "cien"
//	1000      → "mil"
//	1000000   → "un millón"
//	2000000   → "dos millones"
//	119000    → "ciento diecinueve mil"
//
// Los decimales se truncan (los centavos no se escriben).
func NumberToWords(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("%w: %s es negativo", ErrInvalidAmount, amount.String())
	}
	n := amount.Truncate(0)
	if n.GreaterThan(maxWords) {
		return "", fmt.Errorf("%w: %s excede el máximo soportado", ErrInvalidAmount, amount.String())
	}
	num := n.IntPart()
	if num == 0 {
		return "cero", nil
	}

	var words []string
	if millions := num / 1_000_000; millions > 0 {
		if millions == 1 {
			words = append(words, "un", "millón")
		} else {
			words = append(words, belowMillion(millions)...)
			words = append(words, "millones")
		}
		num %= 1_000_000
	}
	words = append(words, belowMillion(num)...)

	return strings.Join(words, " "), nil
}

// AmountInWords es NumberToWords seguido de "pesos", tal como aparece en los documentos.
func AmountInWords(amount decimal.Decimal) (string, error) {
	w, err := NumberToWords(amount)
	if err != nil {
		return "", err
	}
	return w + " pesos", nil
}

// belowMillion escribe 0 < n < 1.000.000; para n == 0 no produce palabras.
func belowMillion(n int64) []string {
	var words []string
	if thousands := n / 1000; thousands > 0 {
		if thousands > 1 {
			words = append(words, belowThousand(thousands)...)
		}
		words = append(words, "mil")
		n %= 1000
	}
	return append(words, belowThousand(n)...)
}

func belowThousand(n int64) []string {
	var words []string
	if n >= 100 {
		if n == 100 {
			return []string{"cien"}
		}
		words = append(words, hundreds[n/100])
		n %= 100
	}
	switch {
	case n >= 20:
		words = append(words, tens[n/10])
		if u := n % 10; u > 0 {
			words = append(words, "y", units[u])
		}
	case n >= 10:
		words = append(words, teens[n-10])
	case n > 0:
		words = append(words, units[n])
	}
	return words
}
