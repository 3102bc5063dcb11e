package period

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

// ── Parámetros globales ───────────────────────────────────────────────────────

// ListParameters catálogo de parámetros globales.
func (uc *UseCase) ListParameters(ctx context.Context) ([]dto.ParameterResponse, error) {
	list, err := uc.params.ListGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	out := make([]dto.ParameterResponse, 0, len(list))
	for _, g := range list {
		out = append(out, toParameterResponse(g))
	}
	return out, nil
}

// CreateParameter crea un parámetro global; el nombre es único sin distinguir mayúsculas.
func (uc *UseCase) CreateParameter(ctx context.Context, in dto.CreateParameterRequest) (*dto.ParameterResponse, error) {
	g := &entity.GlobalParameter{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		DataType:    strings.ToLower(strings.TrimSpace(in.DataType)),
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.params.ListGlobal(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if strings.EqualFold(e.Name, g.Name) {
			return nil, fmt.Errorf("%w: el parámetro %q ya existe", domain.ErrDuplicate, g.Name)
		}
	}
	if err := uc.params.CreateGlobal(ctx, g); err != nil {
		return nil, err
	}
	resp := toParameterResponse(g)
	return &resp, nil
}

// ── Parámetros por período ────────────────────────────────────────────────────

// AttachParameters asocia en una sola transacción los parámetros al período.
func (uc *UseCase) AttachParameters(ctx context.Context, periodID string, in dto.AttachParametersRequest) ([]dto.PeriodParameterResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: no hay parámetros para asociar", domain.ErrInvalidInput)
	}
	out := make([]dto.PeriodParameterResponse, 0, len(in.Items))
	err := uc.tx.Run(ctx, func(periods repository.PeriodRepository, params repository.ParameterRepository) error {
		p, err := periods.GetByID(ctx, periodID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: período", domain.ErrNotFound)
		}
		for _, item := range in.Items {
			g, err := params.GetGlobal(ctx, item.ParameterID)
			if err != nil {
				return err
			}
			if g == nil {
				return fmt.Errorf("%w: parámetro %s", domain.ErrNotFound, item.ParameterID)
			}
			pp := &entity.PeriodParameter{
				PeriodID:          p.ID,
				Parameter:         *g,
				Value:             strings.TrimSpace(item.Value),
				ShowInDocs:        item.ShowInDocs,
				AppliesToInvoices: item.AppliesToInvoices,
			}
			if pp.Status, err = parseParamStatus(item.Status); err != nil {
				return err
			}
			if pp.OperationType, err = parseOperation(item.OperationType); err != nil {
				return err
			}
			if _, err := pp.TypedValue(); err != nil {
				return err
			}
			if err := params.Attach(ctx, pp); err != nil {
				return err
			}
			out = append(out, toPeriodParameterResponse(pp))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListPeriodParameters parámetros asociados al período.
func (uc *UseCase) ListPeriodParameters(ctx context.Context, periodID string) ([]dto.PeriodParameterResponse, error) {
	list, err := uc.params.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	out := make([]dto.PeriodParameterResponse, 0, len(list))
	for _, pp := range list {
		out = append(out, toPeriodParameterResponse(pp))
	}
	return out, nil
}

// UpdatePeriodParameter aplica el parche sobre el valor del parámetro en el período.
func (uc *UseCase) UpdatePeriodParameter(ctx context.Context, id string, in dto.UpdatePeriodParameterRequest) (*dto.PeriodParameterResponse, error) {
	pp, err := uc.params.GetPeriodParameter(ctx, id)
	if err != nil {
		return nil, err
	}
	if pp == nil {
		return nil, domain.ErrNotFound
	}
	if in.Value != nil {
		pp.Value = strings.TrimSpace(*in.Value)
		if _, err := pp.TypedValue(); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if pp.Status, err = parseParamStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	if in.OperationType != nil {
		if pp.OperationType, err = parseOperation(*in.OperationType); err != nil {
			return nil, err
		}
	}
	if in.ShowInDocs != nil {
		pp.ShowInDocs = *in.ShowInDocs
	}
	if in.AppliesToInvoices != nil {
		pp.AppliesToInvoices = *in.AppliesToInvoices
	}
	if err := uc.params.UpdatePeriodParameter(ctx, pp); err != nil {
		return nil, err
	}
	resp := toPeriodParameterResponse(pp)
	return &resp, nil
}

// DetachParameter quita el parámetro del período.
func (uc *UseCase) DetachParameter(ctx context.Context, id string) error {
	return uc.params.Detach(ctx, id)
}

// ── Parámetros de factura ─────────────────────────────────────────────────────

// FilterInvoiceParameters parámetros activos del período activo filtrados por nombre
// (subcadena), tipo de dato y si aplican o no a facturas, en páginas de 8.
func (uc *UseCase) FilterInvoiceParameters(ctx context.Context, f dto.ParameterFilter, page int) (*dto.PeriodParameterListResponse, error) {
	p, err := uc.RequireActivePeriod(ctx)
	if err != nil {
		return nil, err
	}
	all, err := uc.activeParams(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	filtered := listing.Apply(all, listing.Criteria{
		Number: f.Name,
		Status: strings.ToLower(strings.TrimSpace(f.DataType)),
	})
	switch strings.ToLower(strings.TrimSpace(f.Applied)) {
	case "":
	case "applied":
		filtered = keep(filtered, func(pp *entity.PeriodParameter) bool { return pp.AppliesToInvoices })
	case "not-applied":
		filtered = keep(filtered, func(pp *entity.PeriodParameter) bool { return !pp.AppliesToInvoices })
	default:
		return nil, fmt.Errorf("%w: filtro applied %q", domain.ErrInvalidInput, f.Applied)
	}

	pg, err := listing.Paginate(filtered, page, ParameterPageSize)
	if err != nil {
		return nil, err
	}
	out := &dto.PeriodParameterListResponse{
		PeriodID: p.ID,
		Items:    make([]dto.PeriodParameterResponse, 0, len(pg.Items)),
		Page:     dto.PageResponse{Page: pg.Page, Size: pg.Size, Total: pg.Total, TotalPages: pg.TotalPages},
	}
	for _, pp := range pg.Items {
		out.Items = append(out.Items, toPeriodParameterResponse(pp))
	}
	return out, nil
}

// SaveInvoiceParameters guarda la selección: los parámetros listados aplican a facturas
// (con su bandera show_in_docs) y el resto de parámetros activos del período deja de
// aplicar.
func (uc *UseCase) SaveInvoiceParameters(ctx context.Context, in dto.SaveInvoiceParametersRequest) error {
	p, err := uc.RequireActivePeriod(ctx)
	if err != nil {
		return err
	}
	selected := make(map[string]dto.InvoiceParameterSelection, len(in.Items))
	for _, item := range in.Items {
		selected[item.PeriodParameterID] = item
	}

	return uc.tx.Run(ctx, func(_ repository.PeriodRepository, params repository.ParameterRepository) error {
		list, err := params.ListByPeriod(ctx, p.ID)
		if err != nil {
			return err
		}
		known := make(map[string]struct{}, len(list))
		for _, pp := range list {
			known[pp.ID] = struct{}{}
		}
		for id := range selected {
			if _, ok := known[id]; !ok {
				return fmt.Errorf("%w: el parámetro %s no pertenece al período activo", domain.ErrInvalidInput, id)
			}
		}
		for _, pp := range list {
			if !pp.IsActive() {
				continue
			}
			sel, ok := selected[pp.ID]
			applies := ok && sel.AppliesToInvoices
			show := applies && sel.ShowInDocs
			if pp.AppliesToInvoices == applies && pp.ShowInDocs == show {
				continue
			}
			pp.AppliesToInvoices, pp.ShowInDocs = applies, show
			if err := params.UpdatePeriodParameter(ctx, pp); err != nil {
				return err
			}
		}
		return nil
	})
}

// DocumentParameters parámetros del período activo marcados para imprimirse en los
// documentos. Sin período activo devuelve una lista vacía.
func (uc *UseCase) DocumentParameters(ctx context.Context) ([]*entity.PeriodParameter, error) {
	p, err := uc.periods.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	all, err := uc.activeParams(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return keep(all, func(pp *entity.PeriodParameter) bool { return pp.AppliesToInvoices && pp.ShowInDocs }), nil
}

func (uc *UseCase) activeParams(ctx context.Context, periodID string) ([]*entity.PeriodParameter, error) {
	list, err := uc.params.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return keep(list, (*entity.PeriodParameter).IsActive), nil
}

func keep[T any](in []T, pred func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func parseParamStatus(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", entity.StatusActive:
		return entity.StatusActive, nil
	case entity.StatusInactive:
		return entity.StatusInactive, nil
	}
	return "", fmt.Errorf("%w: estado de parámetro %q", domain.ErrInvalidStatus, s)
}

func parseOperation(s string) (entity.OperationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(entity.OperationAdd):
		return entity.OperationAdd, nil
	case string(entity.OperationSubtract):
		return entity.OperationSubtract, nil
	}
	return "", fmt.Errorf("%w: operación %q", domain.ErrInvalidInput, s)
}

func toParameterResponse(g *entity.GlobalParameter) dto.ParameterResponse {
	return dto.ParameterResponse{ID: g.ID, Name: g.Name, Description: g.Description, DataType: g.DataType}
}

func toPeriodParameterResponse(pp *entity.PeriodParameter) dto.PeriodParameterResponse {
	return dto.PeriodParameterResponse{
		ID:                pp.ID,
		PeriodID:          pp.PeriodID,
		Parameter:         toParameterResponse(&pp.Parameter),
		Value:             pp.Value,
		Status:            pp.Status,
		OperationType:     string(pp.OperationType),
		ShowInDocs:        pp.ShowInDocs,
		AppliesToInvoices: pp.AppliesToInvoices,
	}
}
