package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

var _ repository.ParameterRepository = (*ParameterRepo)(nil)

// ParameterRepo parámetros globales y sus valores por período.
type ParameterRepo struct {
	q Querier
}

// NewParameterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewParameterRepository(q Querier) *ParameterRepo {
	return &ParameterRepo{q: q}
}

// ── Parámetros globales ───────────────────────────────────────────────────────

// CreateGlobal persiste un parámetro global; nombre duplicado → domain.ErrDuplicate.
func (r *ParameterRepo) CreateGlobal(ctx context.Context, g *entity.GlobalParameter) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	g.CreatedAt = time.Now()
	_, err := r.q.Exec(ctx, `
		INSERT INTO global_parameters (id, name, description, data_type, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.Name, g.Description, g.DataType, g.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el parámetro %q ya existe", domain.ErrDuplicate, g.Name)
		}
		return fmt.Errorf("insert global parameter: %w", err)
	}
	return nil
}

// ListGlobal parámetros ordenados por nombre.
func (r *ParameterRepo) ListGlobal(ctx context.Context) ([]*entity.GlobalParameter, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, description, data_type, created_at FROM global_parameters ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list global parameters: %w", err)
	}
	defer rows.Close()
	var list []*entity.GlobalParameter
	for rows.Next() {
		var g entity.GlobalParameter
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.DataType, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan global parameter: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// GetGlobal (nil, nil) si no existe.
func (r *ParameterRepo) GetGlobal(ctx context.Context, id string) (*entity.GlobalParameter, error) {
	var g entity.GlobalParameter
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, data_type, created_at FROM global_parameters WHERE id = $1`, id,
	).Scan(&g.ID, &g.Name, &g.Description, &g.DataType, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get global parameter: %w", err)
	}
	return &g, nil
}

// ── Parámetros por período ────────────────────────────────────────────────────

const periodParameterSelect = `
	SELECT pp.id, pp.period_id, pp.value, pp.status, pp.operation_type, pp.show_in_docs,
	       pp.applies_to_invoices, pp.created_at, pp.updated_at,
	       g.id, g.name, g.description, g.data_type, g.created_at
	FROM period_parameters pp
	JOIN global_parameters g ON g.id = pp.parameter_id`

func scanPeriodParameter(row scanner) (*entity.PeriodParameter, error) {
	var pp entity.PeriodParameter
	var op string
	err := row.Scan(
		&pp.ID, &pp.PeriodID, &pp.Value, &pp.Status, &op, &pp.ShowInDocs,
		&pp.AppliesToInvoices, &pp.CreatedAt, &pp.UpdatedAt,
		&pp.Parameter.ID, &pp.Parameter.Name, &pp.Parameter.Description, &pp.Parameter.DataType,
		&pp.Parameter.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	pp.OperationType = entity.OperationKind(op)
	return &pp, nil
}

// Attach asocia un parámetro global a un período con su valor.
func (r *ParameterRepo) Attach(ctx context.Context, pp *entity.PeriodParameter) error {
	if pp.ID == "" {
		pp.ID = uuid.New().String()
	}
	now := time.Now()
	pp.CreatedAt, pp.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO period_parameters (id, period_id, parameter_id, value, status, operation_type,
		                               show_in_docs, applies_to_invoices, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pp.ID, pp.PeriodID, pp.Parameter.ID, pp.Value, pp.Status, string(pp.OperationType),
		pp.ShowInDocs, pp.AppliesToInvoices, pp.CreatedAt, pp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el parámetro %q ya está en el período", domain.ErrDuplicate, pp.Parameter.Name)
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("attach parameter: %w", err)
	}
	return nil
}

// GetPeriodParameter (nil, nil) si no existe.
func (r *ParameterRepo) GetPeriodParameter(ctx context.Context, id string) (*entity.PeriodParameter, error) {
	pp, err := scanPeriodParameter(r.q.QueryRow(ctx, periodParameterSelect+` WHERE pp.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get period parameter: %w", err)
	}
	return pp, nil
}

// ListByPeriod parámetros del período ordenados por nombre.
func (r *ParameterRepo) ListByPeriod(ctx context.Context, periodID string) ([]*entity.PeriodParameter, error) {
	rows, err := r.q.Query(ctx, periodParameterSelect+` WHERE pp.period_id = $1 ORDER BY g.name`, periodID)
	if err != nil {
		return nil, fmt.Errorf("list period parameters: %w", err)
	}
	defer rows.Close()
	var list []*entity.PeriodParameter
	for rows.Next() {
		pp, err := scanPeriodParameter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan period parameter: %w", err)
		}
		list = append(list, pp)
	}
	return list, rows.Err()
}

// UpdatePeriodParameter guarda valor, estado, operación y banderas.
func (r *ParameterRepo) UpdatePeriodParameter(ctx context.Context, pp *entity.PeriodParameter) error {
	pp.UpdatedAt = time.Now()
	tag, err := r.q.Exec(ctx, `
		UPDATE period_parameters
		SET value = $2, status = $3, operation_type = $4, show_in_docs = $5,
		    applies_to_invoices = $6, updated_at = $7
		WHERE id = $1`,
		pp.ID, pp.Value, pp.Status, string(pp.OperationType), pp.ShowInDocs, pp.AppliesToInvoices, pp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update period parameter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Detach quita el parámetro del período.
func (r *ParameterRepo) Detach(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM period_parameters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("detach parameter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
