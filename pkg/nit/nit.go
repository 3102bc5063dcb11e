// Package nit valida el NIT colombiano (dígito de verificación módulo 11 de la DIAN).
package nit

import (
	"fmt"
	"unicode"
)

// pesos DIAN aplicados a los 9 dígitos base del NIT, de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// VerificationDigit calcula el dígito de verificación de los 9 primeros dígitos de taxID.
// Acepta puntos, guiones y espacios ("901.515.884").
func VerificationDigit(taxID string) (byte, error) {
	digits := extractDigits(taxID)
	if len(digits) < 9 {
		return 0, fmt.Errorf("nit: se requieren 9 dígitos, se encontraron %d", len(digits))
	}
	var sum int
	for i, d := range digits[:9] {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r), nil
	}
	return byte('0' + (11 - r)), nil
}

// Validate verifica que taxID traiga 10 dígitos y que el último sea el dígito de
// verificación correcto. "901515884-3", "901.515.884-3" y "9015158843" son equivalentes.
func Validate(taxID string) error {
	digits := extractDigits(taxID)
	if len(digits) != 10 {
		return fmt.Errorf("nit: se esperaban 10 dígitos (base + DV), se recibieron %d", len(digits))
	}
	expected, err := VerificationDigit(string(digits[:9]))
	if err != nil {
		return err
	}
	if digits[9] != expected {
		return fmt.Errorf("nit: dígito de verificación inválido: esperado %c, recibido %c", expected, digits[9])
	}
	return nil
}

// Format devuelve el NIT como "901515884-3" calculando el dígito si hace falta.
func Format(taxID string) (string, error) {
	digits := extractDigits(taxID)
	if len(digits) < 9 {
		return "", fmt.Errorf("nit: se requieren 9 dígitos, se encontraron %d", len(digits))
	}
	dv, err := VerificationDigit(string(digits[:9]))
	if err != nil {
		return "", err
	}
	return string(digits[:9]) + "-" + string(dv), nil
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
