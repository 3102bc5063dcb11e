package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, code, customer_id, client, issue_date, due_date, base_amount, status,
	adjustments::text, operations::text, created_at, updated_at`

// Create persiste la factura con sus ajustes en el orden declarado.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	now := time.Now()
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = now
	}
	invoice.UpdatedAt = now
	if invoice.Status == "" {
		invoice.Status = entity.InvoiceUnconfirmed
	}

	adjustments, err := json.Marshal(invoice.Adjustments)
	if err != nil {
		return fmt.Errorf("encode adjustments: %w", err)
	}
	ops := invoice.Operations
	if ops == nil {
		ops = entity.Operations{}
	}
	operations, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("encode operations: %w", err)
	}

	var dueDate *time.Time
	if !invoice.DueDate.IsZero() {
		dueDate = &invoice.DueDate
	}
	query := `
		INSERT INTO invoices (id, code, customer_id, client, issue_date, due_date, base_amount, status,
		                      adjustments, operations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::json, $10::json, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		invoice.ID, invoice.Code, nullIfEmpty(invoice.CustomerID), invoice.Client,
		invoice.IssueDate, dueDate, invoice.BaseAmount, string(invoice.Status),
		string(adjustments), string(operations), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la factura %s ya existe", domain.ErrDuplicate, invoice.Code)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID; (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	row := r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List devuelve todas las facturas, las más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY issue_date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de cobro.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la factura.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInvoice(row scanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customerID *string
	var dueDate *time.Time
	var status, adjustments, operations string
	err := row.Scan(
		&inv.ID, &inv.Code, &customerID, &inv.Client, &inv.IssueDate, &dueDate,
		&inv.BaseAmount, &status, &adjustments, &operations, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.CustomerID = derefStr(customerID)
	if dueDate != nil {
		inv.DueDate = *dueDate
	}
	inv.Status = entity.InvoiceStatus(status)
	if err := json.Unmarshal([]byte(adjustments), &inv.Adjustments); err != nil {
		return nil, fmt.Errorf("decode adjustments de %s: %w", inv.ID, err)
	}
	if err := json.Unmarshal([]byte(operations), &inv.Operations); err != nil {
		return nil, fmt.Errorf("decode operations de %s: %w", inv.ID, err)
	}
	return &inv, nil
}
