package repository

import (
	"context"

	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

// PeriodRepository puerto de persistencia para Period.
type PeriodRepository interface {
	Create(ctx context.Context, p *entity.Period) error
	GetByID(ctx context.Context, id string) (*entity.Period, error)
	// GetActive devuelve (nil, nil) si no hay período activo.
	GetActive(ctx context.Context) (*entity.Period, error)
	// List ordenado por fecha de inicio descendente.
	List(ctx context.Context) ([]*entity.Period, error)
	// Activate marca id como ACTIVE; domain.ErrConflict si otro período ya está activo.
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ParameterRepository puerto de persistencia para parámetros globales y sus valores por
// período.
type ParameterRepository interface {
	CreateGlobal(ctx context.Context, g *entity.GlobalParameter) error
	ListGlobal(ctx context.Context) ([]*entity.GlobalParameter, error)
	GetGlobal(ctx context.Context, id string) (*entity.GlobalParameter, error)

	Attach(ctx context.Context, pp *entity.PeriodParameter) error
	GetPeriodParameter(ctx context.Context, id string) (*entity.PeriodParameter, error)
	ListByPeriod(ctx context.Context, periodID string) ([]*entity.PeriodParameter, error)
	UpdatePeriodParameter(ctx context.Context, pp *entity.PeriodParameter) error
	Detach(ctx context.Context, id string) error
}
