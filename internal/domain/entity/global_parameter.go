package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cyclonet/factonet-api/internal/domain"
)

// Tipos de dato de un parámetro global.
const (
	DataTypeString = "string"
	DataTypeNumber = "number"
)

// GlobalParameter catálogo de parámetros (ej: "IVA", "Tasa de mora").
type GlobalParameter struct {
	ID          string
	Name        string
	Description string
	DataType    string
	CreatedAt   time.Time
}

// Validate nombre obligatorio y tipo conocido.
func (g *GlobalParameter) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: nombre del parámetro requerido", domain.ErrInvalidInput)
	}
	switch g.DataType {
	case DataTypeString, DataTypeNumber:
		return nil
	}
	return fmt.Errorf("%w: tipo de dato %q", domain.ErrInvalidInput, g.DataType)
}

// PeriodParameter valor de un parámetro global dentro de un período.
type PeriodParameter struct {
	ID                string
	PeriodID          string
	Parameter         GlobalParameter
	Value             string
	Status            string        // ACTIVE | INACTIVE
	OperationType     OperationKind // add | subtract
	ShowInDocs        bool
	AppliesToInvoices bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TypedValue valida Value contra el tipo del parámetro. Para "number" devuelve el
// decimal; para "string" devuelve decimal.Zero.
func (p *PeriodParameter) TypedValue() (decimal.Decimal, error) {
	if p.Parameter.DataType != DataTypeNumber {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(p.Value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s no es numérico", domain.ErrInvalidInput, p.Parameter.Name)
	}
	return d, nil
}

// IsActive indica si el parámetro está activo en el período.
func (p *PeriodParameter) IsActive() bool { return p.Status == StatusActive }

// Métodos para el motor de listados (filtros de parámetros de factura).
func (p *PeriodParameter) ListingStatus() string  { return p.Parameter.DataType }
func (p *PeriodParameter) ListingNumber() string  { return p.Parameter.Name }
func (p *PeriodParameter) ListingClient() string  { return p.Parameter.Description }
func (p *PeriodParameter) ListingDate() time.Time { return p.CreatedAt }
