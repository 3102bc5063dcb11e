package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/listing"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

// ContractUseCase alta, edición, listado, consulta, cambio de estado y borrado de
// contratos.
type ContractUseCase struct {
	contracts repository.ContractRepository
	customers repository.CustomerRepository
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(contracts repository.ContractRepository, customers repository.CustomerRepository) *ContractUseCase {
	return &ContractUseCase{contracts: contracts, customers: customers}
}

// Create registra un contrato PENDING para un cliente y un paquete existentes.
func (uc *ContractUseCase) Create(ctx context.Context, in dto.ContractRequest) (*dto.ContractResponse, error) {
	ct, err := uc.terms(ctx, in)
	if err != nil {
		return nil, err
	}
	ct.Status = entity.ContractPending
	if err := uc.contracts.Create(ctx, ct); err != nil {
		return nil, err
	}
	return uc.reload(ctx, ct.ID)
}

// Update reemplaza los términos de un contrato. Un contrato ACTIVE ya fue firmado y no
// se edita; el PDF generado se descarta porque deja de corresponder.
func (uc *ContractUseCase) Update(ctx context.Context, id string, in dto.ContractRequest) (*dto.ContractResponse, error) {
	current, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == entity.ContractActive {
		return nil, fmt.Errorf("%w: el contrato activo no se puede editar; suspéndalo primero", domain.ErrConflict)
	}
	ct, err := uc.terms(ctx, in)
	if err != nil {
		return nil, err
	}
	ct.ID = current.ID
	ct.Status = current.Status
	if err := uc.contracts.Update(ctx, ct); err != nil {
		return nil, err
	}
	return uc.reload(ctx, ct.ID)
}

// terms valida la solicitud y comprueba que el cliente exista.
func (uc *ContractUseCase) terms(ctx context.Context, in dto.ContractRequest) (*entity.Contract, error) {
	ct := &entity.Contract{
		Code:     strings.TrimSpace(in.Code),
		Value:    in.Value,
		Mode:     strings.ToUpper(strings.TrimSpace(in.Mode)),
		Payday:   in.Payday,
		Customer: entity.Customer{ID: strings.TrimSpace(in.CustomerID)},
		Package:  entity.Package{ID: strings.TrimSpace(in.PackageID)},
	}
	start, err := parseOptionalDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil {
		ct.StartDate = *start
	}
	if end != nil {
		ct.EndDate = *end
	}
	if err := ct.Validate(); err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(ctx, ct.Customer.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, ct.Customer.ID)
	}
	ct.Customer = *customer
	return ct, nil
}

func (uc *ContractUseCase) reload(ctx context.Context, id string) (*dto.ContractResponse, error) {
	ct, err := uc.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, domain.ErrNotFound
	}
	resp := toContractResponse(ct)
	return &resp, nil
}

// List contratos no borrados, por fecha de inicio descendente, filtrados y paginados.
func (uc *ContractUseCase) List(ctx context.Context, f dto.ListFilter, page, size int) (*dto.ContractListResponse, error) {
	c, err := criteria(f, contractStatus)
	if err != nil {
		return nil, err
	}
	list, err := uc.contracts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	p, err := listing.Paginate(listing.Apply(listing.SortByDateDesc(list), c), page, size)
	if err != nil {
		return nil, err
	}
	out := &dto.ContractListResponse{
		Items: make([]dto.ContractResponse, 0, len(p.Items)),
		Page:  pageResponse(p),
	}
	for _, ct := range p.Items {
		out.Items = append(out.Items, toContractResponse(ct))
	}
	return out, nil
}

// Get un contrato; los borrados no se devuelven.
func (uc *ContractUseCase) Get(ctx context.Context, id string) (*dto.ContractResponse, error) {
	ct, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toContractResponse(ct)
	return &resp, nil
}

// UpdateStatus cambia el estado. Para pasar a ACTIVE el contrato debe tener PDF y el
// operador debe confirmar que el cliente lo firmó.
func (uc *ContractUseCase) UpdateStatus(ctx context.Context, id, status string, signedConfirmed bool) error {
	st, err := entity.ParseContractStatus(status)
	if err != nil {
		return err
	}
	if st == entity.ContractDeleted {
		return fmt.Errorf("%w: use el borrado para eliminar un contrato", domain.ErrInvalidInput)
	}
	ct, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if st == entity.ContractActive && ct.Status != entity.ContractActive {
		if err := ct.CanActivate(signedConfirmed); err != nil {
			return err
		}
	}
	return uc.contracts.UpdateStatus(ctx, id, st)
}

// Delete borrado lógico.
func (uc *ContractUseCase) Delete(ctx context.Context, id string) error {
	return uc.contracts.SoftDelete(ctx, id)
}

func (uc *ContractUseCase) find(ctx context.Context, id string) (*entity.Contract, error) {
	ct, err := uc.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ct == nil || ct.Status == entity.ContractDeleted {
		return nil, domain.ErrNotFound
	}
	return ct, nil
}
