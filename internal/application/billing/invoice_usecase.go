package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/billing"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/listing"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

// resolvedInvoice factura junto a su resolución; conserva los accesores de listado.
type resolvedInvoice struct {
	*entity.Invoice
	res *billing.Resolution
}

// InvoiceUseCase listado, consulta, cambio de estado, borrado y exportación de facturas.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
	exporter TableExporter
}

// NewInvoiceUseCase exporter puede ser nil si no se expone la exportación.
func NewInvoiceUseCase(invoices repository.InvoiceRepository, exporter TableExporter) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, exporter: exporter}
}

// List carga todas las facturas (más recientes primero), descubre las columnas sobre el
// conjunto completo, resuelve cada total y luego filtra y pagina. Un fallo de la fuente
// se devuelve envuelto en domain.ErrUpstream.
func (uc *InvoiceUseCase) List(ctx context.Context, f dto.ListFilter, page, size int) (*dto.InvoiceListResponse, error) {
	c, err := criteria(f, invoiceStatus)
	if err != nil {
		return nil, err
	}
	columns, rows, omitted, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	p, err := listing.Paginate(listing.Apply(rows, c), page, size)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceListResponse{
		Columns: columnsResponse(columns),
		Items:   make([]dto.InvoiceResponse, 0, len(p.Items)),
		Page:    pageResponse(p),
		Omitted: omitted,
	}
	for _, r := range p.Items {
		out.Items = append(out.Items, toInvoiceResponse(r.Invoice, r.res, columns))
	}
	return out, nil
}

// Create valida la factura (fechas, estado y que sus ajustes se puedan resolver) y la
// persiste. El estado por defecto es Unconfirmed.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	issue, err := parseOptionalDate("issue_date", in.IssueDate)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, fmt.Errorf("%w: issue_date requerido", domain.ErrInvalidInput)
	}
	due, err := parseOptionalDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}
	inv := &entity.Invoice{
		Code:        strings.TrimSpace(in.Code),
		CustomerID:  strings.TrimSpace(in.CustomerID),
		Client:      strings.TrimSpace(in.Client),
		IssueDate:   *issue,
		BaseAmount:  in.BaseAmount,
		Status:      entity.InvoiceUnconfirmed,
		Adjustments: in.Adjustments.Clone(),
		Operations:  entity.Operations{},
	}
	if due != nil {
		if due.Before(*issue) {
			return nil, fmt.Errorf("%w: el vencimiento es anterior a la emisión", domain.ErrInvalidInput)
		}
		inv.DueDate = *due
	}
	if in.Status != "" {
		if inv.Status, err = entity.ParseInvoiceStatus(in.Status); err != nil {
			return nil, err
		}
	}
	for field, op := range in.Operations {
		kind := entity.OperationKind(strings.ToLower(strings.TrimSpace(string(op))))
		if kind != entity.OperationAdd && kind != entity.OperationSubtract {
			return nil, fmt.Errorf("%w: operación %q en %s", domain.ErrInvalidInput, op, field)
		}
		inv.Operations[field] = kind
	}

	if err := billing.Validate(inv); err != nil {
		return nil, err
	}
	columns := billing.DiscoverColumns([]*entity.Invoice{inv})
	res, err := billing.Resolve(inv, columns)
	if err != nil {
		return nil, err
	}
	if err := uc.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(inv, res, columns)
	return &resp, nil
}

// Get una factura con su total resuelto contra sus propios campos.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, res, err := uc.resolveOne(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(inv, res, billing.DiscoverColumns([]*entity.Invoice{inv}))
	return &resp, nil
}

// UpdateStatus valida el estado contra el conjunto conocido y lo persiste.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	st, err := entity.ParseInvoiceStatus(status)
	if err != nil {
		return err
	}
	return uc.invoices.UpdateStatus(ctx, id, st)
}

// Delete borra la factura en la fuente.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.invoices.Delete(ctx, id)
}

// Export escribe como XLSX todas las facturas que cumplen los filtros: columnas base,
// columnas descubiertas y total final.
func (uc *InvoiceUseCase) Export(ctx context.Context, f dto.ListFilter) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("%w: exportación no configurada", domain.ErrInvalidInput)
	}
	c, err := criteria(f, invoiceStatus)
	if err != nil {
		return nil, err
	}
	columns, rows, _, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	rows = listing.Apply(rows, c)

	header := []string{"Número", "Cliente", "Emisión", "Vencimiento", "Estado", "Valor base"}
	for _, col := range columns {
		header = append(header, billing.Label(col))
	}
	header = append(header, "Total")

	table := make([][]any, 0, len(rows))
	for _, r := range rows {
		line := []any{r.CodeOrID(), r.Client, dateCell(r.IssueDate), dateCell(r.DueDate), string(r.Status), r.res.Base.InexactFloat64()}
		for _, col := range columns {
			if v, ok := r.res.Value(col); ok {
				line = append(line, v.InexactFloat64())
			} else {
				line = append(line, nil)
			}
		}
		table = append(table, append(line, r.res.FinalTotal.InexactFloat64()))
	}
	return uc.exporter.Export(ctx, "Facturas", header, table)
}

// load carga y resuelve todas las facturas. Las que tienen datos inválidos (por ejemplo
// un ajuste negativo) quedan fuera de la tabla y sus números se devuelven en omitted.
func (uc *InvoiceUseCase) load(ctx context.Context) ([]string, []resolvedInvoice, []string, error) {
	list, err := uc.invoices.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	list = listing.SortByDateDesc(list)
	columns, resolutions, failures := billing.ResolveAll(list)
	rows := make([]resolvedInvoice, 0, len(list))
	for i, inv := range list {
		if resolutions[i] == nil {
			continue
		}
		rows = append(rows, resolvedInvoice{Invoice: inv, res: resolutions[i]})
	}
	var omitted []string
	for _, f := range failures {
		if f.Invoice != nil {
			omitted = append(omitted, f.Invoice.CodeOrID())
		}
	}
	return columns, rows, omitted, nil
}

func (uc *InvoiceUseCase) resolveOne(ctx context.Context, id string) (*entity.Invoice, *billing.Resolution, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	res, err := billing.Resolve(inv, billing.DiscoverColumns([]*entity.Invoice{inv}))
	if err != nil {
		return nil, nil, err
	}
	return inv, res, nil
}

func dateCell(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
