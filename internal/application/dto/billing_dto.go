package dto

import (
	"github.com/shopspring/decimal"

	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

// ColumnResponse columna dinámica de la tabla de facturas.
type ColumnResponse struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// AdjustmentLineResponse ajuste aplicado, con signo.
type AdjustmentLineResponse struct {
	Field string          `json:"field"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// InvoiceResponse factura con su total resuelto.
type InvoiceResponse struct {
	ID              string                   `json:"id"`
	Code            string                   `json:"code"`
	CustomerID      string                   `json:"customer_id,omitempty"`
	Client          string                   `json:"client"`
	IssueDate       string                   `json:"issue_date"`
	DueDate         string                   `json:"due_date,omitempty"`
	Status          string                   `json:"status"`
	BaseAmount      decimal.Decimal          `json:"base_amount"`
	Values          map[string]string        `json:"values"` // columna → monto con signo formateado
	Lines           []AdjustmentLineResponse `json:"lines"`
	Skipped         []string                 `json:"skipped,omitempty"`
	Unvalued        []string                 `json:"unvalued,omitempty"`
	FinalTotal      decimal.Decimal          `json:"final_total"`
	FinalTotalText  string                   `json:"final_total_text"`
	FinalTotalWords string                   `json:"final_total_words"`
}

// InvoiceListResponse página de facturas con las columnas descubiertas.
// Code = "UPSTREAM" cuando la fuente de datos falló (Items vacío, nunca datos viejos).
// Omitted lista las facturas que no se pudieron resolver y quedaron fuera.
type InvoiceListResponse struct {
	Columns []ColumnResponse  `json:"columns"`
	Items   []InvoiceResponse `json:"items"`
	Page    PageResponse      `json:"page"`
	Omitted []string          `json:"omitted,omitempty"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
}

// UpdateStatusRequest cambio de estado. SignedConfirmed solo aplica al activar contratos.
type UpdateStatusRequest struct {
	Status          string `json:"status"`
	SignedConfirmed bool   `json:"signed_confirmed"`
}

// PackageConfigurationResponse línea del paquete.
type PackageConfigurationResponse struct {
	TotalAccount int             `json:"total_account"`
	RoleName     string          `json:"role_name"`
	Price        decimal.Decimal `json:"price"`
}

// PackageResponse paquete contratado.
type PackageResponse struct {
	ID             string                         `json:"id"`
	Code           string                         `json:"code,omitempty"`
	Name           string                         `json:"name"`
	Description    string                         `json:"description,omitempty"`
	Configurations []PackageConfigurationResponse `json:"configurations"`
}

// ContractResponse contrato en la tabla de contratos.
type ContractResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Client     string          `json:"client"`
	Document   string          `json:"document,omitempty"`
	Value      decimal.Decimal `json:"value"`
	ValueText  string          `json:"value_text"`
	ValueWords string          `json:"value_words"`
	Mode       string          `json:"mode"`
	Payday     int             `json:"payday,omitempty"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Status     string          `json:"status"`
	PDFURL     string          `json:"pdf_url,omitempty"`
	Package    PackageResponse `json:"package"`
}

// ContractListResponse página de contratos.
type ContractListResponse struct {
	Items   []ContractResponse `json:"items"`
	Page    PageResponse       `json:"page"`
	Code    string             `json:"code,omitempty"`
	Message string             `json:"message,omitempty"`
}

// ContractRequest alta o reemplazo (PUT) de los términos de un contrato. El estado no se
// cambia por aquí.
type ContractRequest struct {
	Code       string          `json:"code"`
	CustomerID string          `json:"customer_id"`
	PackageID  string          `json:"package_id"`
	Value      decimal.Decimal `json:"value"`
	Mode       string          `json:"mode"`
	Payday     int             `json:"payday"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
}

// CreateInvoiceRequest alta de factura. Adjustments conserva el orden de las llaves del
// JSON; Operations indica "add" o "subtract" por campo.
type CreateInvoiceRequest struct {
	Code        string             `json:"code"`
	CustomerID  string             `json:"customer_id,omitempty"`
	Client      string             `json:"client"`
	IssueDate   string             `json:"issue_date"`
	DueDate     string             `json:"due_date,omitempty"`
	Status      string             `json:"status,omitempty"`
	BaseAmount  decimal.Decimal    `json:"base_amount"`
	Adjustments entity.Adjustments `json:"adjustments"`
	Operations  entity.Operations  `json:"operations"`
}
