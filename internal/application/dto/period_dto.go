package dto

// CreatePeriodRequest alta de período o subperíodo (fechas YYYY-MM-DD).
type CreatePeriodRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	ParentID  string `json:"parent_id,omitempty"`
}

// PeriodResponse período de facturación.
type PeriodResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	ParentID  string `json:"parent_id,omitempty"`
	Expired   bool   `json:"expired"`
}

// PeriodListResponse página de períodos.
type PeriodListResponse struct {
	Items []PeriodResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateParameterRequest alta de parámetro global.
type CreateParameterRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DataType    string `json:"data_type"` // string | number
}

// ParameterResponse parámetro global.
type ParameterResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DataType    string `json:"data_type"`
}

// AttachParameterRequest valor de un parámetro en un período.
type AttachParameterRequest struct {
	ParameterID       string `json:"parameter_id"`
	Value             string `json:"value"`
	Status            string `json:"status,omitempty"`
	OperationType     string `json:"operation_type,omitempty"`
	ShowInDocs        bool   `json:"show_in_docs"`
	AppliesToInvoices bool   `json:"applies_to_invoices"`
}

// AttachParametersRequest asociación en lote.
type AttachParametersRequest struct {
	Items []AttachParameterRequest `json:"items"`
}

// UpdatePeriodParameterRequest parche: solo se aplican los campos presentes.
type UpdatePeriodParameterRequest struct {
	Value             *string `json:"value,omitempty"`
	Status            *string `json:"status,omitempty"`
	OperationType     *string `json:"operation_type,omitempty"`
	ShowInDocs        *bool   `json:"show_in_docs,omitempty"`
	AppliesToInvoices *bool   `json:"applies_to_invoices,omitempty"`
}

// PeriodParameterResponse parámetro con su valor en el período.
type PeriodParameterResponse struct {
	ID                string            `json:"id"`
	PeriodID          string            `json:"period_id"`
	Parameter         ParameterResponse `json:"parameter"`
	Value             string            `json:"value"`
	Status            string            `json:"status"`
	OperationType     string            `json:"operation_type"`
	ShowInDocs        bool              `json:"show_in_docs"`
	AppliesToInvoices bool              `json:"applies_to_invoices"`
}

// PeriodParameterListResponse página de parámetros del período activo.
type PeriodParameterListResponse struct {
	PeriodID string                    `json:"period_id"`
	Items    []PeriodParameterResponse `json:"items"`
	Page     PageResponse              `json:"page"`
}

// ParameterFilter filtros de la selección de parámetros de factura.
// Applied: "" (todos), "applied" o "not-applied".
type ParameterFilter struct {
	Name     string `query:"name"`
	DataType string `query:"data_type"`
	Applied  string `query:"applied"`
}

// InvoiceParameterSelection selección de un parámetro para las facturas.
type InvoiceParameterSelection struct {
	PeriodParameterID string `json:"period_parameter_id"`
	AppliesToInvoices bool   `json:"applies_to_invoices"`
	ShowInDocs        bool   `json:"show_in_docs"`
}

// SaveInvoiceParametersRequest guardado en lote de la selección.
type SaveInvoiceParametersRequest struct {
	Items []InvoiceParameterSelection `json:"items"`
}
