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

// CustomerUseCase casos de uso para clientes (facturación y contratos).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &entity.Customer{
		UserName:       strings.TrimSpace(in.UserName),
		PersonType:     strings.ToUpper(strings.TrimSpace(in.PersonType)),
		DocumentType:   strings.TrimSpace(in.DocumentType),
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
	}
	if c.UserName == "" {
		return nil, fmt.Errorf("%w: user_name requerido", domain.ErrInvalidInput)
	}
	if n := in.NaturalPerson; n != nil {
		c.Natural = &entity.NaturalPerson{
			FirstName:     strings.TrimSpace(n.FirstName),
			SecondName:    strings.TrimSpace(n.SecondName),
			FirstSurname:  strings.TrimSpace(n.FirstSurname),
			SecondSurname: strings.TrimSpace(n.SecondSurname),
		}
	}
	if l := in.LegalEntity; l != nil {
		c.Legal = &entity.LegalEntity{
			BusinessName: strings.TrimSpace(l.BusinessName),
			WebSite:      strings.TrimSpace(l.WebSite),
			ContactName:  strings.TrimSpace(l.ContactName),
			ContactEmail: strings.TrimSpace(l.ContactEmail),
			ContactPhone: strings.TrimSpace(l.ContactPhone),
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// List página de clientes en el orden del repositorio.
func (uc *CustomerUseCase) List(ctx context.Context, page, size int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	p, err := listing.Paginate(list, page, size)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(p.Items)),
		Page:  pageResponse(p),
	}
	for _, c := range p.Items {
		out.Items = append(out.Items, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	resp := dto.CustomerResponse{
		ID:             c.ID,
		UserName:       c.UserName,
		PersonType:     c.PersonType,
		DisplayName:    c.DisplayName(),
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
		Document:       c.DocumentLabel(),
	}
	if n := c.Natural; n != nil {
		resp.NaturalPerson = &dto.NaturalPersonDTO{
			FirstName: n.FirstName, SecondName: n.SecondName,
			FirstSurname: n.FirstSurname, SecondSurname: n.SecondSurname,
		}
	}
	if c.IsLegalEntity() {
		l := c.Legal
		resp.LegalEntity = &dto.LegalEntityDTO{
			BusinessName: l.BusinessName, WebSite: l.WebSite,
			ContactName: l.ContactName, ContactEmail: l.ContactEmail, ContactPhone: l.ContactPhone,
		}
	}
	return resp
}
