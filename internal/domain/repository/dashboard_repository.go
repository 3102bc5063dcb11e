package repository

import (
	"context"

	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

// DashboardRepository consultas de solo lectura para el tablero.
type DashboardRepository interface {
	InvoicesByStatus(ctx context.Context) (map[entity.InvoiceStatus]int, error)
	// ContractsByStatus excluye los contratos borrados.
	ContractsByStatus(ctx context.Context) (map[entity.ContractStatus]int, error)
}
