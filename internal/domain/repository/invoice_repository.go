package repository

import (
	"context"

	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// List devuelve todas las facturas con sus ajustes y operaciones en el orden en que
	// fueron declarados.
	List(ctx context.Context) ([]*entity.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error
	Delete(ctx context.Context, id string) error
}
