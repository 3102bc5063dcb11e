// Package period administra los períodos de facturación y los parámetros globales que
// se aplican en cada uno.
package period

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/listing"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

// Tamaños de página de las tablas de períodos y de parámetros de factura.
const (
	PeriodPageSize    = 5
	ParameterPageSize = 8
)

const dateLayout = "2006-01-02"

// UseCase casos de uso de períodos y parámetros.
type UseCase struct {
	periods repository.PeriodRepository
	params  repository.ParameterRepository
	tx      TxRunner
	now     func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(periods repository.PeriodRepository, params repository.ParameterRepository, tx TxRunner) *UseCase {
	return &UseCase{periods: periods, params: params, tx: tx, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// ── Períodos ──────────────────────────────────────────────────────────────────

// ListPeriods página de períodos, los de inicio más reciente primero.
func (uc *UseCase) ListPeriods(ctx context.Context, page, size int) (*dto.PeriodListResponse, error) {
	list, err := uc.periods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	p, err := listing.Paginate(list, page, size)
	if err != nil {
		return nil, err
	}
	out := &dto.PeriodListResponse{
		Items: make([]dto.PeriodResponse, 0, len(p.Items)),
		Page:  dto.PageResponse{Page: p.Page, Size: p.Size, Total: p.Total, TotalPages: p.TotalPages},
	}
	for _, per := range p.Items {
		out.Items = append(out.Items, uc.toPeriodResponse(per))
	}
	return out, nil
}

// ActivePeriod período activo (vencido o no); domain.ErrNoActivePeriod si no hay.
func (uc *UseCase) ActivePeriod(ctx context.Context) (*dto.PeriodResponse, error) {
	p, err := uc.periods.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if p == nil {
		return nil, domain.ErrNoActivePeriod
	}
	resp := uc.toPeriodResponse(p)
	return &resp, nil
}

// CreatePeriod crea un período inactivo. Un subperíodo debe quedar dentro de las
// fechas de su padre.
func (uc *UseCase) CreatePeriod(ctx context.Context, in dto.CreatePeriodRequest) (*dto.PeriodResponse, error) {
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	p := &entity.Period{
		Name:      strings.TrimSpace(in.Name),
		StartDate: start,
		EndDate:   end,
		Status:    entity.StatusInactive,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if parentID := strings.TrimSpace(in.ParentID); parentID != "" {
		parent, err := uc.periods.GetByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: período padre", domain.ErrNotFound)
		}
		if !parent.Contains(start, end) {
			return nil, fmt.Errorf("%w: el subperíodo debe estar entre %s y %s", domain.ErrInvalidInput,
				parent.StartDate.Format(dateLayout), parent.EndDate.Format(dateLayout))
		}
		p.ParentID = &parentID
	}
	if err := uc.periods.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := uc.toPeriodResponse(p)
	return &resp, nil
}

// Activate deja id como único período activo. Si otro ya está activo responde
// domain.ErrConflict; hay que desactivarlo primero.
func (uc *UseCase) Activate(ctx context.Context, id string) error {
	p, err := uc.periods.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if p.IsExpired(uc.now()) {
		return fmt.Errorf("%w: %s terminó el %s", domain.ErrPeriodExpired, p.Name, p.EndDate.Format(dateLayout))
	}
	return uc.periods.Activate(ctx, id)
}

// Deactivate marca el período como inactivo.
func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	return uc.periods.Deactivate(ctx, id)
}

// DeletePeriod borra un período inactivo. El borrado arrastra sus subperíodos, así que
// también se rechaza si el período activo es uno de sus descendientes.
func (uc *UseCase) DeletePeriod(ctx context.Context, id string) error {
	p, err := uc.periods.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if p.IsActive() {
		return fmt.Errorf("%w: no se puede borrar el período activo", domain.ErrConflict)
	}
	active, err := uc.periods.GetActive(ctx)
	if err != nil {
		return err
	}
	if active != nil {
		inside, err := uc.descendsFrom(ctx, active, id)
		if err != nil {
			return err
		}
		if inside {
			return fmt.Errorf("%w: el subperíodo activo %q pertenece a este período", domain.ErrConflict, active.Name)
		}
	}
	return uc.periods.Delete(ctx, id)
}

// maxPeriodDepth corta la subida por parent_id ante datos con ciclos.
const maxPeriodDepth = 32

// descendsFrom indica si p es ancestorID o cuelga de él.
func (uc *UseCase) descendsFrom(ctx context.Context, p *entity.Period, ancestorID string) (bool, error) {
	for depth := 0; p != nil && depth < maxPeriodDepth; depth++ {
		if p.ID == ancestorID {
			return true, nil
		}
		if p.ParentID == nil {
			return false, nil
		}
		parent, err := uc.periods.GetByID(ctx, *p.ParentID)
		if err != nil {
			return false, err
		}
		p = parent
	}
	return false, nil
}

// RequireActivePeriod devuelve el período activo vigente. Sin período activo responde
// domain.ErrNoActivePeriod y si ya terminó domain.ErrPeriodExpired.
func (uc *UseCase) RequireActivePeriod(ctx context.Context) (*entity.Period, error) {
	p, err := uc.periods.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if p == nil {
		return nil, domain.ErrNoActivePeriod
	}
	if p.IsExpired(uc.now()) {
		return nil, fmt.Errorf("%w: %q terminó el %s", domain.ErrPeriodExpired, p.Name, p.EndDate.Format(dateLayout))
	}
	return p, nil
}

func (uc *UseCase) toPeriodResponse(p *entity.Period) dto.PeriodResponse {
	resp := dto.PeriodResponse{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: p.StartDate.Format(dateLayout),
		EndDate:   p.EndDate.Format(dateLayout),
		Status:    p.Status,
		Expired:   p.IsExpired(uc.now()),
	}
	if p.ParentID != nil {
		resp.ParentID = *p.ParentID
	}
	return resp
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato AAAA-MM-DD", domain.ErrInvalidInput, field)
	}
	return t, nil
}
