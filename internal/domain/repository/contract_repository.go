package repository

import (
	"context"

	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

// ContractRepository puerto de persistencia para Contract (con cliente y paquete).
type ContractRepository interface {
	// Create asigna el ID; domain.ErrNotFound si el cliente o el paquete no existen.
	Create(ctx context.Context, k *entity.Contract) error
	// Update reemplaza los términos de un contrato no borrado y descarta su PDF.
	Update(ctx context.Context, k *entity.Contract) error
	GetByID(ctx context.Context, id string) (*entity.Contract, error)
	// List excluye los contratos borrados.
	List(ctx context.Context) ([]*entity.Contract, error)
	UpdateStatus(ctx context.Context, id string, status entity.ContractStatus) error
	SetPDFURL(ctx context.Context, id, url string) error
	// SoftDelete marca el contrato como DELETED con fecha de borrado.
	SoftDelete(ctx context.Context, id string) error
}

// ContractDocumentRepository almacena el PDF generado de cada contrato.
type ContractDocumentRepository interface {
	Save(ctx context.Context, contractID, filename string, content []byte) error
	// Get devuelve (nil, "", nil) si el contrato no tiene documento.
	Get(ctx context.Context, contractID string) (content []byte, filename string, err error)
}
