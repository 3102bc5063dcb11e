package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cyclonet/factonet-api/internal/domain"
)

// InvoiceStatus estado de cobro de una factura.
type InvoiceStatus string

// Estados de factura, en el orden del ciclo de cobro.
const (
	InvoiceUnconfirmed   InvoiceStatus = "Unconfirmed"
	InvoiceIssued        InvoiceStatus = "Issued"
	InvoiceInArrears     InvoiceStatus = "In arrears"
	InvoiceNotification1 InvoiceStatus = "Notification1"
	InvoiceNotification2 InvoiceStatus = "Notification2"
	InvoiceSuspended     InvoiceStatus = "Suspended"
	InvoicePaid          InvoiceStatus = "Paid"
)

var invoiceStatusOrder = []InvoiceStatus{
	InvoiceUnconfirmed,
	InvoiceIssued,
	InvoiceInArrears,
	InvoiceNotification1,
	InvoiceNotification2,
	InvoiceSuspended,
	InvoicePaid,
}

// InvoiceStatuses devuelve los estados en orden.
func InvoiceStatuses() []InvoiceStatus {
	out := make([]InvoiceStatus, len(invoiceStatusOrder))
	copy(out, invoiceStatusOrder)
	return out
}

// ParseInvoiceStatus acepta el nombre del estado sin distinguir mayúsculas.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range invoiceStatusOrder {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: estado de factura %q", domain.ErrInvalidStatus, s)
}

// Ordinal posición del estado en el ciclo (-1 si no es válido).
func (s InvoiceStatus) Ordinal() int {
	for i, st := range invoiceStatusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Invoice representa una factura con valor base y ajustes dinámicos (IVA, descuentos,
// penalidades...). Los campos de ajuste los define el backend de facturación.
type Invoice struct {
	ID          string
	Code        string // número legible, ej: INV-2024-001
	CustomerID  string
	Client      string // nombre del cliente para mostrar
	IssueDate   time.Time
	DueDate     time.Time
	BaseAmount  decimal.Decimal
	Status      InvoiceStatus
	Adjustments Adjustments
	Operations  Operations
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CodeOrID devuelve el código o, si está vacío, el ID.
func (i *Invoice) CodeOrID() string {
	if i.Code != "" {
		return i.Code
	}
	return i.ID
}

// ListingStatus, ListingNumber, ListingClient y ListingDate exponen la factura al motor de
// filtros y paginación.
func (i *Invoice) ListingStatus() string  { return string(i.Status) }
func (i *Invoice) ListingNumber() string  { return i.Code }
func (i *Invoice) ListingClient() string  { return i.Client }
func (i *Invoice) ListingDate() time.Time { return i.IssueDate }
