package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo adaptador de clientes.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// customerColumns columnas de customers con alias c.
const customerColumns = `c.id, c.user_name, c.person_type, c.document_type, c.document_number,
	c.first_name, c.second_name, c.first_surname, c.second_surname,
	c.business_name, c.web_site, c.contact_name, c.contact_email, c.contact_phone`

// customerRow destinos de Scan para customerColumns.
type customerRow struct {
	c                                                  entity.Customer
	firstName, secondName, firstSurname, secondSurname *string
	businessName, webSite                              *string
	contactName, contactEmail, contactPhone            *string
}

func (r *customerRow) dest() []any {
	return []any{
		&r.c.ID, &r.c.UserName, &r.c.PersonType, &r.c.DocumentType, &r.c.DocumentNumber,
		&r.firstName, &r.secondName, &r.firstSurname, &r.secondSurname,
		&r.businessName, &r.webSite, &r.contactName, &r.contactEmail, &r.contactPhone,
	}
}

func (r *customerRow) customer() entity.Customer {
	c := r.c
	switch c.PersonType {
	case entity.PersonLegal:
		c.Legal = &entity.LegalEntity{
			BusinessName: derefStr(r.businessName),
			WebSite:      derefStr(r.webSite),
			ContactName:  derefStr(r.contactName),
			ContactEmail: derefStr(r.contactEmail),
			ContactPhone: derefStr(r.contactPhone),
		}
	default:
		c.Natural = &entity.NaturalPerson{
			FirstName:     derefStr(r.firstName),
			SecondName:    derefStr(r.secondName),
			FirstSurname:  derefStr(r.firstSurname),
			SecondSurname: derefStr(r.secondSurname),
		}
	}
	return c
}

// GetByID obtiene un cliente; (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var row customerRow
	err := r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers c WHERE c.id = $1`, id).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	c := row.customer()
	return &c, nil
}

// List clientes ordenados por razón social o nombre y luego por cuenta.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers c
		ORDER BY lower(COALESCE(NULLIF(c.business_name, ''), NULLIF(c.first_name, ''), c.user_name)), c.user_name`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var row customerRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c := row.customer()
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Create inserta el cliente. Solo se guardan las columnas de la forma indicada por
// PersonType.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	var n entity.NaturalPerson
	var l entity.LegalEntity
	if c.Natural != nil {
		n = *c.Natural
	}
	if c.Legal != nil {
		l = *c.Legal
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (id, user_name, person_type, document_type, document_number,
			first_name, second_name, first_surname, second_surname,
			business_name, web_site, contact_name, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.UserName, c.PersonType, c.DocumentType, c.DocumentNumber,
		nullIfEmpty(n.FirstName), nullIfEmpty(n.SecondName), nullIfEmpty(n.FirstSurname), nullIfEmpty(n.SecondSurname),
		nullIfEmpty(l.BusinessName), nullIfEmpty(l.WebSite), nullIfEmpty(l.ContactName),
		nullIfEmpty(l.ContactEmail), nullIfEmpty(l.ContactPhone))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la cuenta %q ya es cliente", domain.ErrDuplicate, c.UserName)
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}
