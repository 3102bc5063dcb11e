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

var _ repository.PeriodRepository = (*PeriodRepo)(nil)

// PeriodRepo períodos de facturación.
type PeriodRepo struct {
	q Querier
}

// NewPeriodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPeriodRepository(q Querier) *PeriodRepo {
	return &PeriodRepo{q: q}
}

const periodColumns = `id, name, start_date, end_date, status, parent_id, created_at, updated_at`

func scanPeriod(row scanner) (*entity.Period, error) {
	var p entity.Period
	if err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Status, &p.ParentID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un período inactivo.
func (r *PeriodRepo) Create(ctx context.Context, p *entity.Period) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Status == "" {
		p.Status = entity.StatusInactive
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO periods (id, name, start_date, end_date, status, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.StartDate, p.EndDate, p.Status, p.ParentID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un período activo", domain.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: período padre inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert period: %w", err)
	}
	return nil
}

// GetByID (nil, nil) si no existe.
func (r *PeriodRepo) GetByID(ctx context.Context, id string) (*entity.Period, error) {
	p, err := scanPeriod(r.q.QueryRow(ctx, `SELECT `+periodColumns+` FROM periods WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get period: %w", err)
	}
	return p, nil
}

// GetActive (nil, nil) si no hay período activo.
func (r *PeriodRepo) GetActive(ctx context.Context) (*entity.Period, error) {
	p, err := scanPeriod(r.q.QueryRow(ctx,
		`SELECT `+periodColumns+` FROM periods WHERE status = $1`, entity.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active period: %w", err)
	}
	return p, nil
}

// List períodos por fecha de inicio descendente.
func (r *PeriodRepo) List(ctx context.Context) ([]*entity.Period, error) {
	rows, err := r.q.Query(ctx, `SELECT `+periodColumns+` FROM periods ORDER BY start_date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()
	var list []*entity.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Activate activa id dentro de una transacción. Si otro período está activo devuelve
// domain.ErrConflict; activar el período ya activo no hace nada.
func (r *PeriodRepo) Activate(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		var activeID string
		err := tx.QueryRow(ctx,
			`SELECT id FROM periods WHERE status = $1 FOR UPDATE`, entity.StatusActive).Scan(&activeID)
		switch {
		case err == nil && activeID == id:
			return nil
		case err == nil:
			return fmt.Errorf("%w: el período %s ya está activo", domain.ErrConflict, activeID)
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("lock active period: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`UPDATE periods SET status = $2, updated_at = now() WHERE id = $1`, id, entity.StatusActive)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: otro período se activó en paralelo", domain.ErrConflict)
			}
			return fmt.Errorf("activate period: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// Deactivate marca el período como inactivo.
func (r *PeriodRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE periods SET status = $2, updated_at = now() WHERE id = $1`, id, entity.StatusInactive)
	if err != nil {
		return fmt.Errorf("deactivate period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el período (y en cascada sus subperíodos y parámetros). No borra nada si
// el período o alguno de sus descendientes está activo: devuelve domain.ErrConflict.
func (r *PeriodRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `
		WITH RECURSIVE tree AS (
			SELECT id, status FROM periods WHERE id = $1
			UNION ALL
			SELECT p.id, p.status FROM periods p JOIN tree t ON p.parent_id = t.id
		)
		DELETE FROM periods
		WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM tree WHERE status = 'ACTIVE')`, id)
	if err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: el período o uno de sus subperíodos está activo", domain.ErrConflict)
}
