package repository

import (
	"context"

	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia de clientes (facturación y contratos).
type CustomerRepository interface {
	// Create asigna el ID; domain.ErrDuplicate si la cuenta ya existe.
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// List ordenado por nombre para mostrar.
	List(ctx context.Context) ([]*entity.Customer, error)
}
