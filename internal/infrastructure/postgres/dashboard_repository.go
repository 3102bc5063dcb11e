package postgres

import (
	"context"
	"fmt"

	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo conteos agregados para el tablero (solo lectura).
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// InvoicesByStatus número de facturas por estado.
func (r *DashboardRepo) InvoicesByStatus(ctx context.Context) (map[entity.InvoiceStatus]int, error) {
	counts, err := r.countBy(ctx, `SELECT status, count(*) FROM invoices GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count invoices: %w", err)
	}
	out := make(map[entity.InvoiceStatus]int, len(counts))
	for st, n := range counts {
		out[entity.InvoiceStatus(st)] = n
	}
	return out, nil
}

// ContractsByStatus número de contratos no borrados por estado.
func (r *DashboardRepo) ContractsByStatus(ctx context.Context) (map[entity.ContractStatus]int, error) {
	counts, err := r.countBy(ctx, `SELECT status, count(*) FROM contracts WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count contracts: %w", err)
	}
	out := make(map[entity.ContractStatus]int, len(counts))
	for st, n := range counts {
		out[entity.ContractStatus(st)] = n
	}
	return out, nil
}

func (r *DashboardRepo) countBy(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}
