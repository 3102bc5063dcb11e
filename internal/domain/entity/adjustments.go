package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OperationKind indica si un ajuste se suma o se resta del valor base de la factura.
type OperationKind string

const (
	OperationAdd      OperationKind = "add"
	OperationSubtract OperationKind = "subtract"
)

// IsSubtract es true solo para "subtract" (sin distinguir mayúsculas); cualquier otra
// etiqueta se trata como suma.
func (k OperationKind) IsSubtract() bool {
	return strings.EqualFold(strings.TrimSpace(string(k)), string(OperationSubtract))
}

// Operations asocia cada campo de ajuste con su operación.
type Operations map[string]OperationKind

// Adjustments es un mapa campo → valor que conserva el orden de inserción, incluido el
// orden de las llaves del JSON de origen. El descubrimiento de columnas depende de ese
// orden, por eso no se usa un map simple.
type Adjustments struct {
	keys   []string
	values map[string]decimal.Decimal
}

// NewAdjustments construye un mapa con pares campo/valor alternados:
// NewAdjustments("iva", decimal.NewFromInt(19000), "discount", ...).
func NewAdjustments(pairs ...any) Adjustments {
	var a Adjustments
	for i := 0; i+1 < len(pairs); i += 2 {
		field, _ := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case decimal.Decimal:
			a.Set(field, v)
		case int:
			a.Set(field, decimal.NewFromInt(int64(v)))
		case int64:
			a.Set(field, decimal.NewFromInt(v))
		case float64:
			a.Set(field, decimal.NewFromFloat(v))
		}
	}
	return a
}

// Set asigna el valor del campo; un campo existente conserva su posición.
func (a *Adjustments) Set(field string, v decimal.Decimal) {
	if a.values == nil {
		a.values = make(map[string]decimal.Decimal)
	}
	if _, ok := a.values[field]; !ok {
		a.keys = append(a.keys, field)
	}
	a.values[field] = v
}

// Get devuelve el valor del campo y si existe.
func (a Adjustments) Get(field string) (decimal.Decimal, bool) {
	v, ok := a.values[field]
	return v, ok
}

// Has indica si el campo está presente.
func (a Adjustments) Has(field string) bool {
	_, ok := a.values[field]
	return ok
}

// Keys devuelve los campos en orden de inserción (copia).
func (a Adjustments) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len número de campos.
func (a Adjustments) Len() int { return len(a.keys) }

// Clone copia profunda.
func (a Adjustments) Clone() Adjustments {
	var out Adjustments
	for _, k := range a.keys {
		out.Set(k, a.values[k])
	}
	return out
}

// MarshalJSON escribe un objeto JSON con las llaves en orden de inserción.
func (a Adjustments) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(a.values[k].String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON lee un objeto JSON conservando el orden de sus llaves.
// Los valores pueden venir como número o como string numérico.
func (a *Adjustments) UnmarshalJSON(data []byte) error {
	*a = Adjustments{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("ajustes: %w", err)
	}
	if tok == nil {
		return nil // null
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("ajustes: se esperaba un objeto JSON")
	}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return fmt.Errorf("ajustes: %w", err)
		}
		key, _ := kt.(string)
		var v decimal.Decimal
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("ajustes: valor de %q: %w", key, err)
		}
		a.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("ajustes: %w", err)
	}
	return nil
}
