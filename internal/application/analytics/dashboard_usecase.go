// Package analytics contiene los indicadores del tablero de facturación.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

// DashboardUseCase resume el estado de cobro de las facturas y de los contratos.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetMetrics consulta en paralelo los conteos de facturas y de contratos.
func (uc *DashboardUseCase) GetMetrics(ctx context.Context) (*dto.DashboardMetricsResponse, error) {
	type invoicesResult struct {
		counts map[entity.InvoiceStatus]int
		err    error
	}
	type contractsResult struct {
		counts map[entity.ContractStatus]int
		err    error
	}
	invoicesCh := make(chan invoicesResult, 1)
	contractsCh := make(chan contractsResult, 1)

	go func() {
		counts, err := uc.repo.InvoicesByStatus(ctx)
		invoicesCh <- invoicesResult{counts, err}
	}()
	go func() {
		counts, err := uc.repo.ContractsByStatus(ctx)
		contractsCh <- contractsResult{counts, err}
	}()

	invoices := <-invoicesCh
	contracts := <-contractsCh
	if invoices.err != nil {
		return nil, fmt.Errorf("%w: dashboard: facturas: %v", domain.ErrUpstream, invoices.err)
	}
	if contracts.err != nil {
		return nil, fmt.Errorf("%w: dashboard: contratos: %v", domain.ErrUpstream, contracts.err)
	}

	out := &dto.DashboardMetricsResponse{DateLabel: monthLabel(uc.now())}

	// ── Facturas ──────────────────────────────────────────────────────────────
	paid := entity.InvoicePaid.Ordinal()
	for _, st := range entity.InvoiceStatuses() {
		n := invoices.counts[st]
		out.InvoicesByStatus = append(out.InvoicesByStatus, dto.StatusCountDTO{Status: string(st), Count: n})
		if st.Ordinal() < paid {
			out.PendingInvoices += n
		} else {
			out.PaidInvoices += n
		}
	}

	// ── Contratos ─────────────────────────────────────────────────────────────
	for _, st := range entity.ContractStatuses() {
		if st == entity.ContractDeleted {
			continue
		}
		n := contracts.counts[st]
		out.ContractsByStatus = append(out.ContractsByStatus, dto.StatusCountDTO{Status: string(st), Count: n})
		out.TotalContracts += n
		if st == entity.ContractActive {
			out.ActiveContracts = n
		}
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Marzo 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
