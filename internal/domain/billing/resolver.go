// Package billing calcula el total de las facturas a partir del valor base y de los
// ajustes dinámicos que define el backend de facturación.
package billing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

// LineItem ajuste aplicado al total. SignedValue ya lleva el signo de la operación.
type LineItem struct {
	Field       string
	Label       string
	SignedValue decimal.Decimal
}

// Resolution resultado de resolver una factura.
//
//	FinalTotal = Base + Σ LineItems[i].SignedValue
type Resolution struct {
	Base       decimal.Decimal
	FinalTotal decimal.Decimal
	LineItems  []LineItem
	// Skipped campos con valor pero sin operación declarada.
	Skipped []string
	// Unvalued operaciones declaradas sin valor; no afectan el total.
	Unvalued []string
}

// Value devuelve el valor con signo de un campo aplicado.
func (r *Resolution) Value(field string) (decimal.Decimal, bool) {
	for _, li := range r.LineItems {
		if li.Field == field {
			return li.SignedValue, true
		}
	}
	return decimal.Zero, false
}

// Validate es la validación estricta de una factura nueva: valor base y ajustes no
// negativos y toda operación declarada con su valor.
func Validate(inv *entity.Invoice) error {
	if inv == nil {
		return fmt.Errorf("%w: factura nula", domain.ErrInvalidInput)
	}
	if inv.BaseAmount.IsNegative() {
		return fmt.Errorf("%w: valor base negativo en factura %s", domain.ErrInvalidAmount, inv.CodeOrID())
	}
	if missing := unvalued(inv); len(missing) > 0 {
		return fmt.Errorf("%w: la operación %q no tiene valor en factura %s",
			domain.ErrInvalidInput, missing[0], inv.CodeOrID())
	}
	for _, field := range inv.Adjustments.Keys() {
		if v, _ := inv.Adjustments.Get(field); v.IsNegative() && !IsBaseField(field) {
			return fmt.Errorf("%w: %s negativo en factura %s", domain.ErrInvalidAmount, field, inv.CodeOrID())
		}
	}
	return nil
}

// Resolve parte del valor base y aplica, en el orden de columns y luego en el orden
// propio de la factura, cada campo que tenga valor y operación. "subtract" resta;
// cualquier otra etiqueta suma. Un campo con valor y sin operación queda en Skipped; una
// operación sin valor queda en Unvalued. No modifica inv.
func Resolve(inv *entity.Invoice, columns []string) (*Resolution, error) {
	if inv == nil {
		return nil, fmt.Errorf("%w: factura nula", domain.ErrInvalidInput)
	}
	if inv.BaseAmount.IsNegative() {
		return nil, fmt.Errorf("%w: valor base negativo en factura %s", domain.ErrInvalidAmount, inv.CodeOrID())
	}

	res := &Resolution{
		Base:       inv.BaseAmount,
		FinalTotal: inv.BaseAmount,
		LineItems:  make([]LineItem, 0, inv.Adjustments.Len()),
	}
	visited := make(map[string]struct{}, inv.Adjustments.Len())

	apply := func(field string) error {
		if _, done := visited[field]; done || IsBaseField(field) {
			return nil
		}
		value, ok := inv.Adjustments.Get(field)
		if !ok {
			return nil
		}
		visited[field] = struct{}{}
		if value.IsNegative() {
			return fmt.Errorf("%w: %s negativo en factura %s", domain.ErrInvalidAmount, field, inv.CodeOrID())
		}
		op, ok := inv.Operations[field]
		if !ok {
			res.Skipped = append(res.Skipped, field)
			return nil
		}
		signed := value
		if op.IsSubtract() {
			signed = value.Neg()
		}
		res.FinalTotal = res.FinalTotal.Add(signed)
		res.LineItems = append(res.LineItems, LineItem{Field: field, Label: Label(field), SignedValue: signed})
		return nil
	}

	for _, field := range columns {
		if err := apply(field); err != nil {
			return nil, err
		}
	}
	for _, field := range inv.Adjustments.Keys() {
		if err := apply(field); err != nil {
			return nil, err
		}
	}
	res.Unvalued = unvalued(inv)
	return res, nil
}

// unvalued operaciones sin valor en la factura, ordenadas por nombre.
func unvalued(inv *entity.Invoice) []string {
	var out []string
	for field := range inv.Operations {
		if !IsBaseField(field) && !inv.Adjustments.Has(field) {
			out = append(out, field)
		}
	}
	sort.Strings(out)
	return out
}
