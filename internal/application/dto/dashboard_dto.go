package dto

// StatusCountDTO número de registros en un estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DashboardMetricsResponse indicadores del tablero. Pendientes son las facturas en
// cualquier estado anterior a Paid. Los desgloses siguen el orden del ciclo de cada
// entidad e incluyen los estados sin registros.
type DashboardMetricsResponse struct {
	PendingInvoices   int              `json:"pending_invoices"`
	PaidInvoices      int              `json:"paid_invoices"`
	TotalContracts    int              `json:"total_contracts"`
	ActiveContracts   int              `json:"active_contracts"`
	InvoicesByStatus  []StatusCountDTO `json:"invoices_by_status"`
	ContractsByStatus []StatusCountDTO `json:"contracts_by_status"`
	DateLabel         string           `json:"date_label"`
}
